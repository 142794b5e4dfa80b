package models

import "errors"

// ValidationError is the single business-rejection kind. Every failed gate in
// the command and query services raises one with a human-readable message; the
// HTTP layer maps it to a client error. Store failures are never wrapped in
// it and surface as plain infrastructure errors.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a business rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
