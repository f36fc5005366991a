package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange indicates a malformed date range (start after end).
var ErrInvalidRange = errors.New("invalid date range")

// ErrConflict indicates that a concurrent write modified the resource first.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrUnauthorized indicates a missing or invalid caller identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is returned when a failure should not leak details to the caller.
var ErrInternal = errors.New("internal error")

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field, not just the first one.
type ValidationError struct {
	Fields       []FieldError
	invalidRange bool
}

// NewValidationError builds a ValidationError from the given field errors.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewInvalidRangeError reports a date range whose start is after its end.
func NewInvalidRangeError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}, invalidRange: true}
}

// Add appends a field violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no violations were recorded so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	prefix := ErrValidation.Error()
	if e.invalidRange {
		prefix = ErrInvalidRange.Error()
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is match ErrValidation, and ErrInvalidRange for range errors.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return e.invalidRange && target == ErrInvalidRange
}

// AppError wraps an underlying failure with a status-like code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns an error matching ErrNotFound with context.
func NewNotFoundError(message string) error {
	return NewAppError(404, message, ErrNotFound)
}

// NewConflictError returns an error matching ErrConflict with context.
func NewConflictError(message string) error {
	return NewAppError(409, message, ErrConflict)
}
