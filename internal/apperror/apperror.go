// Package apperror defines the application error taxonomy. Services return
// these; handlers map them to HTTP status codes exactly once.
package apperror

import (
	"errors"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Internal is an unspecified server-side failure.
	Internal Kind = iota
	// Unauthorized means no valid authenticated identity was attached to the request.
	Unauthorized
	// Forbidden means the caller is authenticated but not allowed to act on the resource.
	Forbidden
	// NotFound means the requested resource id does not exist.
	NotFound
	// Validation means a field-level constraint was violated.
	Validation
)

// Error is the application error type. Fields carries per-field messages for
// validation failures and is nil for every other kind.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewUnauthorized creates an Unauthorized error.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

// NewForbidden creates a Forbidden error.
func NewForbidden(message string) *Error {
	return &Error{Kind: Forbidden, Message: message}
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewValidation creates a Validation error from a field-keyed message map.
func NewValidation(fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: "validation failed", Fields: fields}
}

// NewFieldValidation creates a Validation error for a single field.
func NewFieldValidation(field, message string) *Error {
	return NewValidation(map[string]string{field: message})
}

// NewInternal wraps an unexpected failure.
func NewInternal(message string, err error) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// From extracts an *Error from err's chain, falling back to Internal so that
// unclassified failures still map to a 500.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("internal server error", err)
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
