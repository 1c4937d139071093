package domain

import "errors"

var (
	// ErrNotFound: the dictionary has no entry for the word, or a stored
	// record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: a history record with the same ID is stored.
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	// ErrUpstream: the dictionary API failed or answered unexpectedly.
	ErrUpstream = errors.New("upstream unavailable")
)

// ValidationError reports an invalid input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
