package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrCardNameEmpty is returned when a card has no name.
	ErrCardNameEmpty = errors.New("card name cannot be empty")

	// ErrCardSuitInvalid is returned when a card's suit is not one of the
	// five known suits.
	ErrCardSuitInvalid = errors.New("invalid card suit")

	// ErrCardMeaningEmpty is returned when a card lacks an upright or
	// reversed base meaning.
	ErrCardMeaningEmpty = errors.New("card meaning cannot be empty")

	// ErrInvalidOrientation is returned when an orientation value is neither
	// Upright nor Reversed.
	ErrInvalidOrientation = errors.New("invalid orientation")

	// ErrEmptyUserID is returned when an operation requires a user ID and
	// none was provided.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrEmptyDay is returned when a daily-card operation is missing its
	// calendar-day key.
	ErrEmptyDay = errors.New("day key cannot be empty")
)

// ValidationError provides field-level context for a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed for " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
