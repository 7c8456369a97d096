// internal/core/errors.go
package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Fetch errors
	ErrTransport   = &Error{Code: "TRANSPORT_FAILED", Message: "transport failed"}
	ErrRateLimited = &Error{Code: "RATE_LIMITED", Message: "too many requests"}
	ErrDataShape   = &Error{Code: "DATA_SHAPE", Message: "price not found in response"}

	// Persistence errors
	ErrPersist = &Error{Code: "PERSIST_FAILED", Message: "persisting price failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d (%s) from %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// NewStatusError wraps a non-2xx HTTP status into the transport taxonomy.
// A 429 is tagged as rate limited; the StatusError stays reachable via errors.As.
func NewStatusError(statusCode int, url string) error {
	se := &StatusError{StatusCode: statusCode, URL: url}
	if statusCode == http.StatusTooManyRequests {
		return WrapError(ErrRateLimited, se)
	}
	return WrapError(ErrTransport, se)
}

// IsRateLimited reports whether err was caused by upstream throttling.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}
