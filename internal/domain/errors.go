package domain

import (
	"errors"
	"fmt"
)

// Error categories returned by services. Callers match them with errors.Is;
// the HTTP layer maps each one to a status code.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error pairs a category with the message shown to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error { return newError(ErrValidation, format, args...) }

func NotFoundf(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

func Forbiddenf(format string, args ...any) error { return newError(ErrForbidden, format, args...) }

func Conflictf(format string, args ...any) error { return newError(ErrConflict, format, args...) }

func Unauthenticatedf(format string, args ...any) error {
	return newError(ErrUnauthenticated, format, args...)
}
