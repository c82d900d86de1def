package spec

import "fmt"

// Error is the single user-facing specification error kind. Every failure
// this package reports is an *Error whose message is meant to be read
// directly by the person authoring the document, so messages carry the
// step id, field name, and offending value wherever they exist.
type Error struct {
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

// Errorf builds a specification error from a format string.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Wrapf builds a specification error that keeps the underlying cause
// available through errors.Unwrap.
func Wrapf(cause error, format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), cause: cause}
}
