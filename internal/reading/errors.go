package reading

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected conditions. Callers check these with
// errors.Is and turn them into user-facing replies.
var (
	// ErrUnknownTone indicates a tone name that is not a known preset.
	ErrUnknownTone = errors.New("unknown tone")
)

// ServiceError is a custom error type for reading service errors.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reading service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("reading service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
