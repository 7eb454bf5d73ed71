package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Wrong API call", http.StatusPaymentRequired),
			expected: "[PAY_001] Wrong API call",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_002", "Gateway transport failure", http.StatusBadGateway, fmt.Errorf("connection refused")),
			expected: "[SYS_002] Gateway transport failure: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("PAY_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"MissingCredentials", ErrMissingCredentials("merchant id"), "CFG_001", 500},
		{"UnresolvableAction", ErrUnresolvableAction("doMagic"), "DSP_001", 400},
		{"UnknownFunction", ErrUnknownFunction("doMagic"), "DSP_002", 404},
		{"InvalidCredentials", ErrInvalidCredentials(nil), "AUTH_001", 401},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"GatewayRejected", ErrGatewayRejected("01100", "Do not honor", nil), "PAY_001", 402},
		{"Validation", Validation("walletId is required"), "PAY_002", 400},
		{"RateLimited", ErrRateLimitExceeded(), "RATE_001", 429},
		{"RequestInProgress", ErrRequestInProgress(), "IDEM_001", 409},
		{"Internal", InternalError(errors.New("boom")), "SYS_001", 500},
		{"Transport", ErrTransport(errors.New("dial tcp")), "SYS_002", 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestErrGatewayRejected_KeepsRawResponse(t *testing.T) {
	raw := map[string]any{"result": map[string]any{"code": "01100"}}
	err := ErrGatewayRejected("01100", "", raw)

	assert.Equal(t, "Wrong API call", err.Message)
	assert.Equal(t, "01100", err.ResultCode)
	assert.Equal(t, raw, err.Raw)
}

func TestErrUnresolvableAction_NamesAction(t *testing.T) {
	err := ErrUnresolvableAction("doMagic")
	assert.Contains(t, err.Message, "doMagic")
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("calling gateway: %w", ErrTransport(errors.New("eof")))

	assert.True(t, HasCode(wrapped, CodeTransport))
	assert.False(t, HasCode(wrapped, CodeInternal))
	assert.False(t, HasCode(errors.New("plain"), CodeTransport))
}
