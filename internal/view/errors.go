package view

import "errors"

// Error variables for the interaction layer.
var (
	ErrGestureActive = errors.New("gesture already in progress")
	ErrNoGesture     = errors.New("no gesture in progress")
	ErrNotEditing    = errors.New("no cell is being edited")
	ErrInvalidChoice = errors.New("value is not one of the options")
	ErrInvalidNumber = errors.New("value is not a number")
	ErrUnknownColumn = errors.New("unknown column")
	ErrOutOfRange    = errors.New("index out of range")
	ErrNoMenu        = errors.New("no context menu open")
	ErrStaleTarget   = errors.New("menu target not on screen")
	ErrUnknownAction = errors.New("action not offered")
	ErrClosed        = errors.New("controller closed")
)
