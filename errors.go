/*
Package dynafluent – error types.

All failures raised by this package are *Error values tagged with a
well-known ErrorCode so callers can branch without string matching.
Failures from the DynamoDB client itself are wrapped with ErrClient and
the original error preserved for errors.Is / errors.As.
*/
package dynafluent

import (
	"errors"
	"fmt"
)

// ErrorCode is a well-known error category string.
type ErrorCode string

const (
	// ErrConfiguration covers invalid registry setup: empty table name,
	// missing region with no ambient default, nil field maps.
	ErrConfiguration ErrorCode = "ConfigurationError"

	// ErrMissingVariable is raised when a key template is generated
	// without a value for one of its required variables.
	ErrMissingVariable ErrorCode = "MissingVariableError"

	// ErrType is raised when a value has the wrong shape for its field,
	// e.g. a scalar handed to a template field.
	ErrType ErrorCode = "TypeError"

	// ErrState is raised when a builder is mutated or executed after its
	// terminal call has already run.
	ErrState ErrorCode = "StateError"

	// ErrClient tags failures propagated from the DynamoDB client.
	ErrClient ErrorCode = "ClientError"
)

// Error is the error type returned by every operation in this package.
// It carries an optional free-form Context map for extra debugging data.
type Error struct {
	Message string
	Code    ErrorCode
	Context map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError constructs an Error.
func NewError(msg string, opts ...func(*Error)) *Error {
	err := &Error{Message: msg}
	for _, o := range opts {
		o(err)
	}
	return err
}

// WithCode sets the error code.
func WithCode(c ErrorCode) func(*Error) {
	return func(e *Error) { e.Code = c }
}

// WithContext attaches a context map.
func WithContext(ctx map[string]any) func(*Error) {
	return func(e *Error) { e.Context = ctx }
}

// WithCause wraps an underlying error.
func WithCause(cause error) func(*Error) {
	return func(e *Error) { e.Cause = cause }
}

// HasCode reports whether err (or anything it wraps) is an *Error with the
// given code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func newConfigError(msg string) *Error {
	return NewError(msg, WithCode(ErrConfiguration))
}

func newStateError(msg string) *Error {
	return NewError(msg, WithCode(ErrState))
}

func newClientError(op string, cause error) *Error {
	return NewError(fmt.Sprintf("dynafluent %q failed: %s", op, cause),
		WithCode(ErrClient), WithCause(cause))
}
