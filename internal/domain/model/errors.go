package model

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when an operation needs a task that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// ValidationError reports a submitted field that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
