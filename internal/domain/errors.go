// Package domain holds the quotation, line item and charge model shared by the
// table store, the composite quotation service and the layout designer.
//
// Errors here are business-level failures, not HTTP errors. Adapters map them
// to status codes.
package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Failure kinds. Every typed error below unwraps to one of them.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names a missing row, column or layout.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError reports that entity id does not exist. id may be empty.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a change that clashes with stored state, such as a
// column name already in use. Name is the clashing value when there is one.
type ConflictError struct {
	Entity string
	Reason string
	Name   string
}

func (e *ConflictError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
	}

	return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Name)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError reports a clash on entity.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewDuplicateError reports that name is already taken within entity.
func NewDuplicateError(entity, name string) error {
	return &ConflictError{Entity: entity, Reason: "already exists", Name: name}
}

// ValidationError carries one rejected field, several, or only a message.
type ValidationError struct {
	Field   string
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	if e.Message == "" && len(e.Fields) > 0 {
		return "validation failed for " + strings.Join(slices.Sorted(maps.Keys(e.Fields)), ", ")
	}

	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Details maps every rejected field, Field included, to its message. It is
// nil when no field was named.
func (e *ValidationError) Details() map[string]string {
	if e.Field == "" && len(e.Fields) == 0 {
		return nil
	}

	out := maps.Clone(e.Fields)
	if out == nil {
		out = make(map[string]string, 1)
	}

	if e.Field != "" {
		out[e.Field] = e.Message
	}

	return out
}

// NewValidationError rejects field with message. An empty field rejects
// the input as a whole.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewFieldsValidationError rejects several fields at once.
func NewFieldsValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// ForbiddenError refuses an operation the model never allows, such as
// dropping the id column.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("operation %q forbidden", e.Operation)
	}

	return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// NewForbiddenError refuses operation for reason.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError reports a backing service that could not be reached:
// the database, the layout store or the quotation API.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("service %q unavailable", e.Service)
	}

	return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError reports service as unreachable.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool    { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsForbidden(err error) bool   { return errors.Is(err, ErrForbidden) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
