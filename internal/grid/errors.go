package grid

import "errors"

// Error variables for engine configuration.
var (
	ErrInvalidDirection = errors.New("invalid sort direction")
	ErrDuplicateSortKey = errors.New("duplicate sort key")
	ErrInvalidRange     = errors.New("invalid range")
)
