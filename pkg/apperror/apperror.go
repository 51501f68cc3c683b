// Package apperror defines the error types shared by the entity, storage and
// HTTP layers. Handlers map them to status codes: ValidationError to 400,
// NotFoundError to 404 and IntegrityError to 409.
package apperror

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports an invariant or boundary violation on one field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NotFoundError is returned when an identifier does not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IntegrityError wraps a constraint violation reported by the store. Reason
// names the violated relation or constraint and is safe to show clients.
type IntegrityError struct {
	Resource string
	Reason   string
	Err      error
}

func NewIntegrity(resource, reason string, err error) *IntegrityError {
	return &IntegrityError{Resource: resource, Reason: reason, Err: err}
}

// Detail is the message without the store's own error text.
func (e *IntegrityError) Detail() string {
	reason := e.Reason
	if reason == "" {
		reason = "integrity violation"
	}
	if e.Resource == "" {
		return reason
	}
	return e.Resource + ": " + reason
}

func (e *IntegrityError) Error() string {
	if e.Err == nil {
		return e.Detail()
	}
	return e.Detail() + ": " + e.Err.Error()
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
