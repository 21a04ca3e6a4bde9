package api

import (
	"errors"
)

// Error codes produced by the request engine. Every response maps to
// success or exactly one of these; API-embedded envelope errors keep
// whatever code the server sent.
const (
	CodeTransportFailure = "transport-failure"
	CodeInvalidResponse  = "invalid-response"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not-found"
	CodeAPIError         = "api-error"
	CodeUnknownField     = "unknown-field"
)

// Error represents a failed API call.
type Error struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// IsCode reports whether err is an API error carrying the given code.
func IsCode(err error, code string) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
