package services

import (
	"errors"

	"moviedb/internal/models"
)

// Kind classifies a service failure.
type Kind string

// Failure kinds returned by the services.
const (
	KindNotFound           Kind = "not_found"
	KindDuplicateKey       Kind = "duplicate_key"
	KindForbidden          Kind = "forbidden"
	KindAlreadyRated       Kind = "already_rated"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindStore              Kind = "store_error"
)

// Sentinels for errors.Is; a *Error matches the sentinel of its kind.
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrDuplicateKey       = &Error{Kind: KindDuplicateKey}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrAlreadyRated       = &Error{Kind: KindAlreadyRated}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrStore              = &Error{Kind: KindStore}
)

// Error is a classified failure. Message is safe to show to users;
// Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of err, KindStore for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// ResultOf converts a service return pair into the API result shape.
func ResultOf[T any](data T, err error) models.Result[T] {
	if err != nil {
		return models.Fail[T](Message(err))
	}
	return models.OK(data)
}
