package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals a malformed request value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLengthMismatch signals parallel arrays of different lengths.
	ErrLengthMismatch = errors.New("array length mismatch")
	// ErrTooManyPoints signals an input larger than the configured limit.
	ErrTooManyPoints = errors.New("too many points")
	// ErrNotFound signals an operation that produced no result.
	ErrNotFound = errors.New("not found")
)

// LimitError wraps ErrTooManyPoints with the offending size.
type LimitError struct {
	Got   int
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d exceeds limit of %d", ErrTooManyPoints.Error(), e.Got, e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrTooManyPoints }

// NewLimitError creates a point-limit error.
func NewLimitError(got, limit int) error {
	return &LimitError{Got: got, Limit: limit}
}
