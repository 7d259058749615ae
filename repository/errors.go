package repository

import "errors"

var (
	// ErrNotFound the record does not exist or belongs to another owner
	ErrNotFound = errors.New("record not found")
	// ErrValidation bad or missing input; every *ValidationError matches it
	ErrValidation = errors.New("validation failed")
)

// ValidationError user-facing input error for one field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
