package domain

import (
	"errors"
	"fmt"
)

type (
	// NotFoundError indicates a library, item, question or document was not found
	NotFoundError struct {
		Resource string
		ID       string
	}

	// ValidationError indicates invalid input or a rejected state transition
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
func (e *ValidationError) Error() string { return e.Message }

// Is lets errors.Is match the sentinel values below.
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// ConflictError reports a write that lost against a concurrent one
type ConflictError struct {
	Message      string
	ResourceType string // library, item, document
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewNotFound is shorthand for a NotFoundError.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewValidation is shorthand for a formatted ValidationError.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
