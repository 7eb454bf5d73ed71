package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	ResultCode string         `json:"result_code,omitempty"` // Gateway result code, when the gateway answered
	Raw        map[string]any `json:"raw,omitempty"`         // Decoded gateway response
	HTTPStatus int            `json:"-"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

const (
	CodeMissingCredentials = "CFG_001"
	CodeUnresolvableAction = "DSP_001"
	CodeUnknownFunction    = "DSP_002"
	CodeInvalidCredentials = "AUTH_001"
	CodeInvalidToken       = "AUTH_003"
	CodeGatewayRejected    = "PAY_001"
	CodeValidation         = "PAY_002"
	CodeRateLimited        = "RATE_001"
	CodeRequestInProgress  = "IDEM_001"
	CodeInternal           = "SYS_001"
	CodeTransport          = "SYS_002"
)

// ---- Configuration (CFG) ----

func ErrMissingCredentials(field string) *AppError {
	return New(CodeMissingCredentials, fmt.Sprintf("Missing gateway credential: %s", field), http.StatusInternalServerError)
}

// ---- Dispatch (DSP) ----

func ErrUnresolvableAction(action string) *AppError {
	return New(CodeUnresolvableAction, fmt.Sprintf("Wrong action for the API: %s", action), http.StatusBadRequest)
}

func ErrUnknownFunction(name string) *AppError {
	return New(CodeUnknownFunction, fmt.Sprintf("Unknown function: %s", name), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials(err error) *AppError {
	return Wrap(CodeInvalidCredentials, "Wrong API credentials", http.StatusUnauthorized, err)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Payment Gateway (PAY) ----

// ErrGatewayRejected reports a non-success result code, keeping the raw response.
func ErrGatewayRejected(resultCode, message string, raw map[string]any) *AppError {
	if message == "" {
		message = "Wrong API call"
	}
	return &AppError{
		Code:       CodeGatewayRejected,
		Message:    message,
		ResultCode: resultCode,
		Raw:        raw,
		HTTPStatus: http.StatusPaymentRequired,
	}
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Idempotency (IDEM) ----

func ErrRequestInProgress() *AppError {
	return New(CodeRequestInProgress, "A request with this idempotency key is already in progress", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// ErrTransport wraps network, SOAP fault and decoding failures.
func ErrTransport(err error) *AppError {
	return Wrap(CodeTransport, "Gateway transport failure", http.StatusBadGateway, err)
}
