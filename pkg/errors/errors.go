package errors

import (
	"errors"
	"fmt"
)

// Standard error types
var (
	ErrTokenAcquisition = errors.New("token acquisition error")
	ErrQueryExecution   = errors.New("query execution error")
	ErrCancelled        = errors.New("cancelled")
	ErrConfiguration    = errors.New("configuration error")
	ErrExtraction       = errors.New("data extraction error")
)

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %v", errType, wrapped)
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
