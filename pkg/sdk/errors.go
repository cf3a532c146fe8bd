package geokit

import "github.com/kailas-cloud/geokit/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrLengthMismatch  = domain.ErrLengthMismatch
	ErrTooManyPoints   = domain.ErrTooManyPoints
	ErrNotFound        = domain.ErrNotFound
)

// LimitError reports an input larger than WithMaxPoints allows.
// It matches ErrTooManyPoints.
type LimitError = domain.LimitError
