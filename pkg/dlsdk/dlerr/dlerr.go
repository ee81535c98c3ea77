package dlerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a stable error category that callers can switch on.
type Code string

const (
	CodeUnknown     Code = "unknown"
	CodeBadRequest  Code = "bad_request"
	CodeNotFound    Code = "not_found"
	CodeServer      Code = "server"
	CodeUnavailable Code = "unavailable"
)

// Error is a simple value type that carries a Code plus the underlying error.
type Error struct {
	Code Code
	err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// New wraps an error with the provided code. If err is nil a nil is returned.
func New(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, err: err}
}

// FromStatus picks the code for an HTTP status.
func FromStatus(status int) Code {
	switch {
	case status == http.StatusBadRequest:
		return CodeBadRequest
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusServiceUnavailable:
		return CodeUnavailable
	case status >= 500:
		return CodeServer
	default:
		return CodeUnknown
	}
}

// IsCode helps callers compare codes without type assertions.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
