package deal

import "errors"

// Error variables for record and column validation.
var (
	ErrUnknownField       = errors.New("unknown field")
	ErrFieldNotSortable   = errors.New("field is not sortable")
	ErrDuplicateColumn    = errors.New("duplicate column key")
	ErrInvalidDisplayType = errors.New("invalid display type")
	ErrNoColumns          = errors.New("column configuration is empty")
	ErrEmptyID            = errors.New("deal id is required")
	ErrDuplicateID        = errors.New("duplicate deal id")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidAmount      = errors.New("amount must be non-negative")
	ErrInvalidProbability = errors.New("probability must be 0-100")
	ErrInvalidDate        = errors.New("invalid date (want YYYY-MM-DD)")
	ErrInvalidActivity    = errors.New("invalid activity type")
	ErrDatasetRead        = errors.New("cannot read dataset")
	ErrDatasetFormat      = errors.New("invalid dataset")
)
