// File: /services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

// Error carries a client-facing message alongside one of the sentinel kinds
// above. errors.Is(err, ErrNotFound) matches an *Error of that kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) *Error {
	return newError(ErrNotFound, format, args...)
}

func conflict(format string, args ...interface{}) *Error {
	return newError(ErrConflict, format, args...)
}

func invalidArgument(format string, args ...interface{}) *Error {
	return newError(ErrInvalidArgument, format, args...)
}

func unauthorized(format string, args ...interface{}) *Error {
	return newError(ErrUnauthorized, format, args...)
}

func forbidden(format string, args ...interface{}) *Error {
	return newError(ErrForbidden, format, args...)
}
