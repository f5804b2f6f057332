// Package apperr defines the error taxonomy shared by all domain services.
// Handlers map an error's Kind to an HTTP status; services never touch HTTP.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Unknown marks errors outside the taxonomy.
	Unknown Kind = iota
	// Validation covers malformed input, enum values out of range, and
	// operations invoked without required scope (e.g. queue create with no
	// visit).
	Validation
	// NotFound covers lookups of nonexistent records.
	NotFound
	// Unauthorized covers requests with no authenticated caller.
	Unauthorized
	// Forbidden covers authenticated callers lacking permission.
	Forbidden
	// Conflict covers uniqueness violations (duplicate email, MRN).
	Conflict
)

// Error carries a kind alongside the message so handlers can pick a status
// code without string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or Unknown for errors outside the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unknown
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

// IsValidation reports whether err is a Validation error.
func IsValidation(err error) bool {
	return KindOf(err) == Validation
}

// HTTPStatus maps an error to the status code a handler should return.
// Errors outside the taxonomy map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
