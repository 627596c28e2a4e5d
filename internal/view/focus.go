package view

// Key is a navigation or mode key understood by the grid.
type Key int

// Key values.
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyEscape
)

// Cell addresses a position in the visible grid: Row indexes the derived
// view, Col indexes the visible columns.
type Cell struct {
	Row int
	Col int
}

// Move returns c moved by k inside a rows x cols grid. Movement clamps at
// the edges and never wraps. page is the row step for PageUp/PageDown.
func (c Cell) Move(k Key, rows, cols, page int) Cell {
	page = max(page, 1)

	switch k {
	case KeyUp:
		c.Row--
	case KeyDown:
		c.Row++
	case KeyLeft:
		c.Col--
	case KeyRight:
		c.Col++
	case KeyHome:
		c.Col = 0
	case KeyEnd:
		c.Col = cols - 1
	case KeyPageUp:
		c.Row -= page
	case KeyPageDown:
		c.Row += page
	}

	return c.clamp(rows, cols)
}

func (c Cell) clamp(rows, cols int) Cell {
	c.Row = min(max(c.Row, 0), max(rows-1, 0))
	c.Col = min(max(c.Col, 0), max(cols-1, 0))

	return c
}
