// Package apperr defines the error taxonomy shared by all storefront services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError is returned when a referenced entity is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ForbiddenError is returned when an authenticated actor may not touch
// the entity.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// InvalidStateError is returned when the operation is not permitted given
// the entity's current state.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return e.Reason }

func InvalidState(reason string) error {
	return &InvalidStateError{Reason: reason}
}

// ValidationError reports malformed or out-of-range input with field detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UnauthenticatedError is returned when no valid credential accompanies
// the request.
type UnauthenticatedError struct {
	Reason string
}

func (e *UnauthenticatedError) Error() string { return e.Reason }

func Unauthenticated(reason string) error {
	return &UnauthenticatedError{Reason: reason}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsForbidden(err error) bool {
	var f *ForbiddenError
	return errors.As(err, &f)
}

func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsUnauthenticated(err error) bool {
	var u *UnauthenticatedError
	return errors.As(err, &u)
}

// Status maps a taxonomy error to its HTTP response code.
func Status(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsForbidden(err):
		return http.StatusForbidden
	case IsValidation(err), IsInvalidState(err):
		return http.StatusBadRequest
	case IsUnauthenticated(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
