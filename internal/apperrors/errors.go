// Package apperrors defines the error taxonomy shared by services and handlers.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalid
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalid:
		return "INVALID_INPUT"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error is a domain error carrying a Kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so sentinel comparisons work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks. They carry no message so they match any error of their kind.
var (
	ErrForbidden = &Error{Kind: KindForbidden}
	ErrNotFound  = &Error{Kind: KindNotFound}
	ErrConflict  = &Error{Kind: KindConflict}
)

func Unauthenticated(msg string) error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) error       { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) error        { return &Error{Kind: KindConflict, Message: msg} }

// Invalid builds a bad-request error; format follows fmt.Sprintf.
func Invalid(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
