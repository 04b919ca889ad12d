package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports malformed input or configuration. Never coerced.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// NewValidation builds a ValidationError from one or more problems
func NewValidation(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// ConflictError reports that a seat/session slot is already taken
type ConflictError struct {
	Resource string
	Occupant string
}

func (e *ConflictError) Error() string {
	if e.Occupant != "" {
		return fmt.Sprintf("%s already taken by %s", e.Resource, e.Occupant)
	}
	return e.Resource + " already taken"
}

// NewConflict builds a ConflictError. occupant may be empty when unknown.
func NewConflict(resource, occupant string) *ConflictError {
	return &ConflictError{Resource: resource, Occupant: occupant}
}

// NotFoundError reports a missing seat, session, reservation, bid or event
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ExternalServiceError wraps an infrastructure failure (store, cache, broker)
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternal wraps err as an ExternalServiceError. A nil err yields nil.
func NewExternal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Op: op, Err: err}
}

// ErrForbidden is returned when the acting principal may not touch the target event
var ErrForbidden = errors.New("forbidden")

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsExternal(err error) bool {
	var target *ExternalServiceError
	return errors.As(err, &target)
}

// AsConflict extracts the ConflictError from a chain
func AsConflict(err error) (*ConflictError, bool) {
	var target *ConflictError
	ok := errors.As(err, &target)
	return target, ok
}

// HTTPStatus maps an error chain to the status code the API answers with
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsConflict(err):
		return http.StatusConflict
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsExternal(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
