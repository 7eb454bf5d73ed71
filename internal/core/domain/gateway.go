package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Environment selects the gateway platform.
type Environment string

const (
	EnvironmentHomologation Environment = "homologation"
	EnvironmentProduction   Environment = "production"
)

// ParseEnvironment maps anything other than "production" to homologation.
func ParseEnvironment(s string) Environment {
	if strings.EqualFold(strings.TrimSpace(s), string(EnvironmentProduction)) {
		return EnvironmentProduction
	}
	return EnvironmentHomologation
}

// OperationGroup identifies one of the remote service endpoints.
type OperationGroup string

const (
	GroupDirectPayment OperationGroup = "directPayment"
	GroupWebPayment    OperationGroup = "webPayment"
	GroupExtended      OperationGroup = "extended"
)

// OperationGroups lists the groups in action resolution order.
var OperationGroups = []OperationGroup{GroupDirectPayment, GroupWebPayment, GroupExtended}

// DefaultEndpointPrefixes are the service roots per environment.
var DefaultEndpointPrefixes = map[Environment]string{
	EnvironmentHomologation: "https://homologation.payline.com/V4/services/",
	EnvironmentProduction:   "https://services.payline.com/V4/services/",
}

// DefaultWSDLNames are the service definition files per group.
var DefaultWSDLNames = map[OperationGroup]string{
	GroupWebPayment:    "WebPaymentAPI.wsdl",
	GroupDirectPayment: "DirectPaymentAPI.wsdl",
	GroupExtended:      "ExtendedAPI.wsdl",
}

const (
	// ObjectNamespace qualifies the gateway's complex types.
	ObjectNamespace = "http://obj.ws.payline.experian.com"

	ProtocolVersion        = "18"
	DefaultReferencePrefix = "order_"
	DefaultResetComment    = "Card validation cleanup"

	// MinValidationAmount is the smallest amount, in minor units, used to validate a card.
	MinValidationAmount int64 = 100
)

var successCodes = map[string]struct{}{
	"00000": {},
	"02500": {},
}

// IsSuccessCode reports whether a gateway result code means the call succeeded.
func IsSuccessCode(code string) bool {
	_, ok := successCodes[code]
	return ok
}

// Currency is an ISO 4217 numeric currency code.
type Currency int

const (
	CurrencyEUR Currency = 978
	CurrencyUSD Currency = 840
	CurrencyGBP Currency = 826
)

var currencyNames = map[string]Currency{
	"EUR": CurrencyEUR,
	"USD": CurrencyUSD,
	"GBP": CurrencyGBP,
}

// ParseCurrency accepts an alphabetic code (EUR) or a numeric one (978).
// Numeric codes have at most three digits.
func ParseCurrency(s string) (Currency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if c, ok := currencyNames[s]; ok {
		return c, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 999 {
		return 0, fmt.Errorf("unknown currency %q", s)
	}
	return Currency(n), nil
}

// UnmarshalJSON accepts 978, "978" and "EUR".
func (c *Currency) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Currency(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if s == "" {
		*c = 0
		return nil
	}
	parsed, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ActionCode is the payment action sent with each payment record.
type ActionCode int

const (
	ActionAuthorization ActionCode = 100
	ActionPayment       ActionCode = 101 // authorization + capture
	ActionValidation    ActionCode = 201 // capture of an authorization
	ActionRefund        ActionCode = 421
)

// Mode is the payment mode.
type Mode string

const ModeCPT Mode = "CPT"
