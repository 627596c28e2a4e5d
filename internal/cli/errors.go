package cli

import "errors"

// Error variables for command validation.
var (
	ErrDealNotFound     = errors.New("deal not found")
	ErrArgRequired      = errors.New("argument required")
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrInvalidSort      = errors.New("invalid sort")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidColumn    = errors.New("invalid column")
	ErrInvalidWidth     = errors.New("invalid width")
	ErrInvalidMove      = errors.New("invalid move")
	ErrConflictingFlags = errors.New("conflicting flags")
)
