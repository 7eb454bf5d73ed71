package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidations(v)
	return v
}

// --- TrimStrings tests ---

func TestTrimStrings_TrimsWhitespace(t *testing.T) {
	ev := Event{
		WalletID:      "  wallet-1  ",
		TransactionID: " 26101123456789\n",
		Comment:       " keep inner  spaces ",
	}
	TrimStrings(&ev)

	assert.Equal(t, "wallet-1", ev.WalletID)
	assert.Equal(t, "26101123456789", ev.TransactionID)
	assert.Equal(t, "keep inner  spaces", ev.Comment)
}

func TestTrimStrings_LeavesNestedValuesAlone(t *testing.T) {
	order := &Order{Ref: " ref "}
	ev := Event{Order: order}
	TrimStrings(&ev)

	assert.Equal(t, " ref ", ev.Order.Ref)
}

func TestTrimStrings_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	TrimStrings(s) // should not panic
	TrimStrings((*Event)(nil))
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"ref-001",
		"REF_002",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"ref 001",     // space
		"ref<001>",    // angle brackets
		"ref;DROP",    // semicolon
		"",            // empty
		"hello world", // space
		"ref\n001",    // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestActionName(t *testing.T) {
	assert.True(t, actionNameRe.MatchString("doAuthorization"))
	assert.True(t, actionNameRe.MatchString("getMerchantSettings"))
	assert.False(t, actionNameRe.MatchString("do-authorization"))
	assert.False(t, actionNameRe.MatchString("1action"))
	assert.False(t, actionNameRe.MatchString("../etc"))
}

func TestEventValidation(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name  string
		event Event
		valid bool
	}{
		{"empty event", Event{}, true},
		{"full web payment", Event{
			ReturnURL:            "https://shop.example/return",
			CancelURL:            "http://shop.example/cancel",
			SelectedContractList: []string{"CB", "AMEX_1"},
			Currency:             "EUR",
		}, true},
		{"numeric currency", Event{Currency: "978"}, true},
		{"unknown currency", Event{Currency: "euro"}, false},
		{"javascript url", Event{ReturnURL: "javascript:alert(1)"}, false},
		{"wallet id with space", Event{WalletID: "wallet 1"}, false},
		{"wallet id too long", Event{WalletID: "w123456789012345678901234567890123456789012345678901"}, false},
		{"bad environment", Event{Environment: "staging"}, false},
		{"production environment", Event{Environment: "production"}, true},
		{"bad action", Event{Action: "do;rm"}, false},
		{"bad contract", Event{SelectedContractList: []string{"CB<"}}, false},
		{"negative order amount", Event{Order: &Order{Amount: -1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.event)
			if tt.valid {
				require.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
