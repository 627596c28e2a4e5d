package view

import (
	"fmt"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// ResizeWidth is the width of a column being resized from startWidth, after
// the pointer moved from startX to x.
func ResizeWidth(startWidth, startX, x int) int {
	return max(deal.MinColumnWidth, startWidth+(x-startX))
}

// ResizeGesture tracks one column resize. It is either idle or active; at
// most one resize is in flight per gesture value.
type ResizeGesture struct {
	active     bool
	key        deal.Field
	startX     int
	startWidth int
	width      int
}

// Begin captures the column and pointer position.
func (g *ResizeGesture) Begin(key deal.Field, x, width int) error {
	if g.active {
		return fmt.Errorf("%w: resizing %s", ErrGestureActive, g.key)
	}

	*g = ResizeGesture{active: true, key: key, startX: x, startWidth: width, width: width}

	return nil
}

// Move updates the preview width for pointer position x.
func (g *ResizeGesture) Move(x int) (int, error) {
	if !g.active {
		return 0, ErrNoGesture
	}

	g.width = ResizeWidth(g.startWidth, g.startX, x)

	return g.width, nil
}

// End finishes the gesture and returns the final width.
func (g *ResizeGesture) End() (deal.Field, int, error) {
	if !g.active {
		return "", 0, ErrNoGesture
	}

	key, width := g.key, g.width
	*g = ResizeGesture{}

	return key, width, nil
}

// Cancel drops the gesture without a result. It is safe to call when idle.
func (g *ResizeGesture) Cancel() { *g = ResizeGesture{} }

// Active reports the column and preview width of an in-flight resize.
func (g *ResizeGesture) Active() (deal.Field, int, bool) {
	return g.key, g.width, g.active
}

// DragGesture tracks one column reorder.
type DragGesture struct {
	active bool
	from   int
}

// Begin picks up the column at index from.
func (g *DragGesture) Begin(from int) error {
	if g.active {
		return fmt.Errorf("%w: dragging column %d", ErrGestureActive, g.from)
	}

	*g = DragGesture{active: true, from: from}

	return nil
}

// Drop finishes the gesture and returns the source index.
func (g *DragGesture) Drop() (int, error) {
	if !g.active {
		return 0, ErrNoGesture
	}

	from := g.from
	*g = DragGesture{}

	return from, nil
}

// Cancel drops the gesture. It is safe to call when idle.
func (g *DragGesture) Cancel() { *g = DragGesture{} }

// Active reports the source index of an in-flight drag.
func (g *DragGesture) Active() (int, bool) { return g.from, g.active }
