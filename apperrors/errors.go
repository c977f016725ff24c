// Package apperrors defines the error taxonomy of the fiscal backend. Every
// failed operation is expressed as one of four typed, synchronous errors;
// there is no fatal class and nothing is retried internally.
package apperrors

import (
	"errors"
	"net/http"
)

// ValidationError signals missing or malformed required input. The caller
// can always recover by correcting the request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError signals that a referenced entity id does not resolve.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// PreconditionError signals that an entity exists but is in the wrong state
// for the requested operation.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// ConflictError signals a uniqueness violation, e.g. a duplicate NIU.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Validation builds a ValidationError.
func Validation(message string) error { return &ValidationError{Message: message} }

// NotFound builds a NotFoundError.
func NotFound(message string) error { return &NotFoundError{Message: message} }

// Precondition builds a PreconditionError.
func Precondition(message string) error { return &PreconditionError{Message: message} }

// Conflict builds a ConflictError.
func Conflict(message string) error { return &ConflictError{Message: message} }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// HTTPStatus maps a domain error to the HTTP status code of the external
// contract: 400 for validation and precondition failures, 404 for unresolved
// references, 409 for uniqueness conflicts, 500 otherwise.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err), IsPrecondition(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
