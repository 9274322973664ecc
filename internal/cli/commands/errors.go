package commands

import (
	"errors"
	"fmt"
)

// UsageError reports invalid command-line usage: bad arguments, unknown
// flags or unusable paths. It maps to exit status 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a UsageError from a format string.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err is or wraps a UsageError.
func IsUsageError(err error) bool {
	var uerr *UsageError
	return errors.As(err, &uerr)
}
