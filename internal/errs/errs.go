// Package errs defines the closed set of request-level error kinds and the
// messages carried to the client. The HTTP layer maps kinds to status codes;
// anything that is not an *errs.Error is treated as an internal error there.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a request-level failure.
type Kind int

const (
	// KindValidation covers malformed, missing, or out-of-range input.
	KindValidation Kind = iota
	// KindNotFound covers absent rooms/members/expenses, including an
	// expense that exists but under a different room.
	KindNotFound
	// KindCapacity covers a join attempt on a room that already has two
	// members.
	KindCapacity
	// KindConflict covers a duplicate member name within a room.
	KindConflict
)

// Error is a tagged request error with a human-readable message that is
// surfaced verbatim to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation returns a validation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Capacity returns a capacity error with a formatted message.
func Capacity(format string, args ...any) *Error {
	return &Error{Kind: KindCapacity, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a conflict error with a formatted message.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err into an *Error, if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}
