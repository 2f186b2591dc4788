package contract

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// ErrValidation marks malformed input rejected before any state change.
	ErrValidation ErrorCode = "VALIDATION"
	// ErrNotFound marks a reference to a missing entity.
	ErrNotFound ErrorCode = "NOT_FOUND"
	// ErrState marks an operation attempted from a state that forbids it.
	ErrState ErrorCode = "STATE"
	// ErrConcurrency marks recompute lock contention that exhausted retries.
	ErrConcurrency ErrorCode = "CONCURRENCY"
	// ErrExternal marks a document source failure or timeout. Always
	// recoverable via an explicit re-run, never fatal to the session.
	ErrExternal ErrorCode = "EXTERNAL"
)

// Error is the typed error surfaced by every service operation. Message
// always carries the specific reason, never a generic failure.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Code: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Code: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewStateError(format string, args ...any) *Error {
	return &Error{Code: ErrState, Message: fmt.Sprintf(format, args...)}
}

func NewConcurrencyError(format string, args ...any) *Error {
	return &Error{Code: ErrConcurrency, Message: fmt.Sprintf(format, args...)}
}

func NewExternalError(cause error, format string, args ...any) *Error {
	return &Error{Code: ErrExternal, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// HasCode reports whether err (or anything it wraps) is a contract Error
// with the given code.
func HasCode(err error, code ErrorCode) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Code == code
}
