// Package errors provides the structured error type used throughout lgrep.
package errors

import "fmt"

// Kind classifies an Error so callers can branch on failure category
// without string matching.
type Kind string

const (
	KindIO            Kind = "IO"
	KindEmbedding     Kind = "EMBEDDING"
	KindIndex         Kind = "INDEX"
	KindSerialization Kind = "SERIALIZATION"
	KindJSON          Kind = "JSON"
	KindNoIndex       Kind = "NO_INDEX"
	KindInvalidPath   Kind = "INVALID_PATH"
	KindWatch         Kind = "WATCH"
	KindConfig        Kind = "CONFIG"
)

// Error is the structured error type returned by lgrep's public API.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around an existing error.
// Returns nil if err is nil, so call sites can write
// `return errors.Wrap(errors.KindIO, err)` unconditionally.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: err.Error(), Cause: err}
}

// Wrapf creates an Error of the given kind around an existing error with
// additional context prepended to the message.
func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...) + ": " + err.Error(), Cause: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is / errors.As over the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by Kind, enabling errors.Is(err, &Error{Kind: KindNoIndex}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if as(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// as is a small local copy of errors.As to avoid importing the stdlib
// package under the same name as this one at every call site.
func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsNoIndex reports whether err signals a missing index (spec: "run index first").
func IsNoIndex(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNoIndex
}
