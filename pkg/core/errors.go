package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a failure for recovery decisions and reporting.
type ErrorCategory int

const (
	// ErrCategoryNone means no error.
	ErrCategoryNone ErrorCategory = iota
	// ErrCategoryLocate covers failures to resolve a query to an element.
	ErrCategoryLocate
	// ErrCategoryInteraction covers protocol-level failures during
	// click/type/select/upload and friends.
	ErrCategoryInteraction
	// ErrCategoryAlert covers alert commands with no alert present.
	ErrCategoryAlert
	// ErrCategoryProtocol covers transport and session failures.
	ErrCategoryProtocol
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryLocate:
		return "locate"
	case ErrCategoryInteraction:
		return "interaction"
	case ErrCategoryAlert:
		return "alert"
	case ErrCategoryProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// ExecutionError is a structured error with a category and a machine-readable
// code. Codes follow the W3C WebDriver error strings where one applies.
type ExecutionError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause attached.
func (e *ExecutionError) WithCause(cause error) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ExecutionError) WithMessage(msg string) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Cause:    e.Cause,
	}
}

// Predefined errors.
var (
	ErrNoSuchElement = &ExecutionError{
		Category: ErrCategoryLocate,
		Code:     "no such element",
		Message:  "could not locate the element",
	}
	ErrStaleElement = &ExecutionError{
		Category: ErrCategoryInteraction,
		Code:     "stale element reference",
		Message:  "element is no longer attached to the page",
	}
	ErrNoElementLocated = &ExecutionError{
		Category: ErrCategoryInteraction,
		Code:     "no element located",
		Message:  "no element currently located, use the locate command first",
	}
	ErrNoActiveElement = &ExecutionError{
		Category: ErrCategoryInteraction,
		Code:     "no active element",
		Message:  "the browser reports no focused element",
	}
	ErrNoAlert = &ExecutionError{
		Category: ErrCategoryAlert,
		Code:     "no such alert",
		Message:  "no alert is currently open",
	}
	ErrSessionClosed = &ExecutionError{
		Category: ErrCategoryProtocol,
		Code:     "invalid session id",
		Message:  "browser session is no longer valid",
	}
)

// LocateError builds the error reported when no strategy matched a query.
// The query is preserved verbatim so it surfaces in the report.
func LocateError(query string) *ExecutionError {
	return &ExecutionError{
		Category: ErrCategoryLocate,
		Code:     "no such element",
		Message:  fmt.Sprintf("could not locate %q on the page", query),
	}
}

// InteractionError wraps a protocol failure during an element interaction.
func InteractionError(action string, cause error) *ExecutionError {
	return &ExecutionError{
		Category: ErrCategoryInteraction,
		Code:     "interaction failed",
		Message:  fmt.Sprintf("error during %s", action),
		Cause:    cause,
	}
}

// IsStale reports whether the error chain contains a stale element failure.
func IsStale(err error) bool {
	var ee *ExecutionError
	if errors.As(err, &ee) {
		return ee.Code == "stale element reference"
	}
	return false
}

// CategoryOf extracts the category from an error chain, or ErrCategoryNone.
func CategoryOf(err error) ErrorCategory {
	var ee *ExecutionError
	if errors.As(err, &ee) {
		return ee.Category
	}
	if err != nil {
		return ErrCategoryProtocol
	}
	return ErrCategoryNone
}
