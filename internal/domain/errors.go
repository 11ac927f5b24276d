package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a local validation failure. No backend request is made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrControlBusy signals that the triggering control is disabled by an in-flight request.
	ErrControlBusy = errors.New("control busy")
)

// ValidationError wraps ErrInvalidInput with the offending field and a user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a validation error for a form field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
