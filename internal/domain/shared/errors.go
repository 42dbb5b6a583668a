package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

// Unwrap exposes the wrapped cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so wrapped copies compare equal to the sentinels
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of the error carrying cause
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, cause: cause}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConversionFailed = NewDomainError("CONVERSION_FAILED", "Conversion failed")
)

// ValidationError reports field-level validation failures raised before persistence.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records another failing field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns nil when no field failed, so callers can return it directly
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
