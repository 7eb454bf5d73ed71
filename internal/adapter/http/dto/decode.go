package dto

import (
	"fmt"
	"reflect"
	"sort"

	"payline-connector/internal/core/domain"
	"payline-connector/pkg/apperror"

	"github.com/go-viper/mapstructure/v2"
)

var (
	fieldsType   = reflect.TypeOf(domain.Fields{})
	currencyType = reflect.TypeOf(domain.Currency(0))
)

// DecodeEvent converts a loosely typed event (e.g. the payload of a queue
// message) into an Event. Numbers given as text are accepted.
func DecodeEvent(raw map[string]any) (*Event, error) {
	var ev Event
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ev,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			fieldsHook,
			currencyHook,
		),
	})
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, apperror.Validation(fmt.Sprintf("invalid event: %v", err))
	}
	return &ev, nil
}

// fieldsHook turns objects into Fields. Keys are sorted: decoded maps carry
// no order of their own.
func fieldsHook(from, to reflect.Type, data any) (any, error) {
	if to != fieldsType {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	return toFields(m), nil
}

func toFields(m map[string]any) domain.Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(domain.Fields, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if nested, ok := v.(map[string]any); ok {
			v = toFields(nested)
		}
		out = append(out, domain.Field{Name: k, Value: v})
	}
	return out
}

func currencyHook(from, to reflect.Type, data any) (any, error) {
	if to != currencyType || from.Kind() != reflect.String {
		return data, nil
	}
	s, _ := data.(string)
	if s == "" {
		return 0, nil
	}
	c, err := domain.ParseCurrency(s)
	if err != nil {
		return nil, err
	}
	return int(c), nil
}
