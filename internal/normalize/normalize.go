// Package normalize rewrites request values into the textual formats the
// gateway expects: dates as DD/MM/YYYY HH:mm, card expiry as MMYY and
// amounts as whole minor units.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"payline-connector/internal/core/domain"
)

const (
	DateTimeLayout  = "02/01/2006 15:04"
	DateLayout      = "02/01/2006"
	ExpiryLayout    = "0106"
	BirthdateLayout = "020106"
)

// fieldLayouts overrides the default date layout for specific field names.
var fieldLayouts = map[string]string{
	"scheduledDate":     DateLayout,
	"ownerBirthdayDate": BirthdateLayout,
}

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	DateTimeLayout,
	DateLayout,
}

var (
	expiryMMYY    = regexp.MustCompile(`^\d{4}$`)
	expiryMYY     = regexp.MustCompile(`^\d{3}$`)
	expirySlashed = regexp.MustCompile(`^(\d{1,2})\s*/\s*(\d{2}|\d{4})$`)
)

// Normalizer renders dates in a fixed location.
type Normalizer struct {
	loc *time.Location
}

// New creates a normalizer. A nil location means time.Local.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Location returns the location dates are rendered in.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Fields returns a normalized copy of args. The input is never modified.
func (n *Normalizer) Fields(args domain.Fields) domain.Fields {
	out := make(domain.Fields, 0, len(args))
	for _, f := range args {
		if v, ok := n.value(f.Name, f.Value); ok {
			out = append(out, domain.Field{Name: f.Name, Value: v})
		}
	}
	return out
}

// Value normalizes a single value as if it were stored under name.
// The second result is false when the value should be omitted.
func (n *Normalizer) Value(name string, v any) (any, bool) {
	return n.value(name, v)
}

func (n *Normalizer) value(name string, v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case domain.Fields:
		return n.Fields(t), true
	case time.Time:
		if t.IsZero() {
			return nil, false
		}
		return n.formatTime(name, t), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil, false
		}
		return n.formatTime(name, *t), true
	case string:
		return n.text(name, t), true
	case json.Number:
		if name == "expirationDate" {
			return n.expiry(t.String()), true
		}
		if isAmountName(name) {
			return amountText(t.String()), true
		}
		return t.String(), true
	case map[string]any:
		return n.mapFields(name, t), true
	case domain.Response:
		return n.mapFields(name, t), true
	case []any:
		return n.list(name, reflect.ValueOf(t)), true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if t, ok := rv.Interface().(time.Time); ok {
			return n.value(name, t)
		}
		return n.structFields(rv), true
	case reflect.Map:
		if rv.IsNil() {
			return nil, false
		}
		return n.reflectMap(name, rv), true
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
		return n.list(name, rv), true
	case reflect.Array:
		return n.list(name, rv), true
	case reflect.String:
		return n.text(name, rv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return n.text(name, strconv.FormatInt(rv.Int(), 10)), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return n.text(name, strconv.FormatUint(rv.Uint(), 10)), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if isAmountName(name) || name == "expirationDate" {
			return n.text(name, strconv.FormatInt(int64(math.Round(f)), 10)), true
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}
	return v, true
}

func (n *Normalizer) text(name, s string) string {
	switch {
	case name == "expirationDate":
		return n.expiry(s)
	case isDateName(name):
		if t, ok := n.ParseTime(s); ok {
			return n.formatTime(name, t)
		}
		return s
	case isAmountName(name):
		return amountText(s)
	}
	return s
}

func (n *Normalizer) formatTime(name string, t time.Time) string {
	t = t.In(n.loc)
	if name == "expirationDate" {
		return t.Format(ExpiryLayout)
	}
	if layout, ok := fieldLayouts[name]; ok {
		return t.Format(layout)
	}
	return t.Format(DateTimeLayout)
}

// expiry accepts MMYY, MYY, MM/YY, MM/YYYY and full dates. Anything else loses its
// slash and is passed through.
func (n *Normalizer) expiry(s string) string {
	s = strings.TrimSpace(s)
	if expiryMMYY.MatchString(s) {
		return s
	}
	if expiryMYY.MatchString(s) {
		return "0" + s
	}
	if m := expirySlashed.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month >= 1 && month <= 12 {
			year := m[2]
			return twoDigits(month) + year[len(year)-2:]
		}
	}
	if t, ok := n.ParseTime(s); ok {
		return t.In(n.loc).Format(ExpiryLayout)
	}
	return strings.ReplaceAll(s, "/", "")
}

// ParseTime parses s with the accepted input layouts. Values without a zone
// are read in the normalizer's location.
func (n *Normalizer) ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (n *Normalizer) structFields(rv reflect.Value) domain.Fields {
	rt := rv.Type()
	out := make(domain.Fields, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(sf)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		if v, ok := n.value(name, fv.Interface()); ok {
			out = append(out, domain.Field{Name: name, Value: v})
		}
	}
	return out
}

// mapFields sorts keys: maps carry no order of their own.
func (n *Normalizer) mapFields(_ string, m map[string]any) domain.Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(domain.Fields, 0, len(keys))
	for _, k := range keys {
		if v, ok := n.value(k, m[k]); ok {
			out = append(out, domain.Field{Name: k, Value: v})
		}
	}
	return out
}

func (n *Normalizer) reflectMap(name string, rv reflect.Value) domain.Fields {
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[toKey(iter.Key())] = iter.Value().Interface()
	}
	return n.mapFields(name, m)
}

// list keeps the parent name for elements so repeated date or amount
// elements are formatted like a single one.
func (n *Normalizer) list(name string, rv reflect.Value) []any {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if v, ok := n.value(name, rv.Index(i).Interface()); ok {
			out = append(out, v)
		}
	}
	return out
}

func jsonName(sf reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = sf.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func toKey(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

func isDateName(name string) bool {
	return name == "date" || strings.HasSuffix(name, "Date")
}

func isAmountName(name string) bool {
	return name == "amount" || strings.HasSuffix(name, "Amount")
}

func amountText(s string) string {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(math.Round(f)), 10)
	}
	return s
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
