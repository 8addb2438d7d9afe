package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrBlocked       = errors.New("temporarily blocked")
)

// Difficulty control errors. None of them is ever shown to the learner.
var (
	// ErrInvalidLevel marks a level value outside the six canonical descriptors.
	ErrInvalidLevel = errors.New("invalid difficulty level")
	// ErrUnknownLevel is returned by the policy table for a descriptor it has no bundle for.
	ErrUnknownLevel = errors.New("unknown difficulty level")
	// ErrReviewUnavailable means the review oracle failed or returned unusable output.
	ErrReviewUnavailable = errors.New("review unavailable")
	// ErrFormatIncomplete marks a task formatter call with an unsupported option shape.
	ErrFormatIncomplete = errors.New("task format incomplete")
	// ErrStorageUnavailable means the persistence backend could not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
