package schema

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode string

const (
	HTMLBodyError       ErrorCode = "HTML_BODY"
	InvalidJSONError    ErrorCode = "INVALID_JSON"
	BackendError        ErrorCode = "BACKEND_ERROR"
	SessionExpiredError ErrorCode = "SESSION_EXPIRED"
	TimeoutError        ErrorCode = "TIMEOUT"
	ConnectionError     ErrorCode = "CONNECTION"
	PaymentURLError     ErrorCode = "PAYMENT_URL_MISSING"
)

// excerptLimit caps how much of a raw upstream body is carried around for
// diagnostics.
const excerptLimit = 200

type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Excerpt string    `json:"excerpt,omitempty"`
	Status  int       `json:"status,omitempty"`
}

func (e *ResponseError) Error() string {
	return e.Message
}

func Excerpt(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > excerptLimit {
		return body[:excerptLimit]
	}

	return body
}

func NewHTMLBodyError(operation string, body string) *ResponseError {
	return &ResponseError{
		Code:    HTMLBodyError,
		Message: fmt.Sprintf("%s: backend returned HTML instead of JSON", operation),
		Excerpt: Excerpt(body),
	}
}

func NewInvalidJSONError(operation string, body string) *ResponseError {
	return &ResponseError{
		Code:    InvalidJSONError,
		Message: fmt.Sprintf("%s: invalid JSON response from backend", operation),
		Excerpt: Excerpt(body),
	}
}

func NewBackendError(operation string, status int, message string) *ResponseError {
	if message == "" {
		message = fmt.Sprintf("%s failed with status %d", operation, status)
	}

	return &ResponseError{
		Code:    BackendError,
		Message: message,
		Status:  status,
	}
}

func NewSessionExpiredError() *ResponseError {
	return &ResponseError{
		Code:    SessionExpiredError,
		Message: "session expired, please sign in again",
		Status:  401,
	}
}

func NewTimeoutError(msg string) *ResponseError {
	return &ResponseError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) *ResponseError {
	return &ResponseError{
		Code:    ConnectionError,
		Message: msg,
	}
}

func NewPaymentURLError() *ResponseError {
	return &ResponseError{
		Code:    PaymentURLError,
		Message: "payment URL not received",
	}
}

// IsCode reports whether err is a ResponseError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var responseError *ResponseError
	if errors.As(err, &responseError) {
		return responseError.Code == code
	}

	return false
}
