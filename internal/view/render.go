package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

// PixelsPerChar converts column pixel widths to terminal cells.
const PixelsPerChar = 10

// Chars returns the terminal width of a column.
func Chars(col deal.ColumnConfig) int {
	return max(4, col.Width/PixelsPerChar)
}

// Fit truncates or pads s to exactly width terminal cells.
func Fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(s) > width {
		var b strings.Builder

		for _, r := range s {
			if lipgloss.Width(b.String()+string(r)) > width-1 {
				break
			}

			b.WriteRune(r)
		}

		s = b.String() + "…"
	}

	pad := strings.Repeat(" ", width-lipgloss.Width(s))
	if align == AlignRight {
		return pad + s
	}

	return s + pad
}

// HeaderLabel returns the column label with its sort arrow. The sort
// priority is appended when more than one key is active.
func HeaderLabel(col deal.ColumnConfig, sort grid.SortConfig) string {
	i := sort.Index(col.Key)
	if i < 0 {
		return col.Label
	}

	arrow := " ↑"
	if sort[i].Direction == grid.Desc {
		arrow = " ↓"
	}

	if len(sort) > 1 {
		arrow += strconv.Itoa(i + 1)
	}

	return col.Label + arrow
}

// TotalsLine summarizes a derived view.
func TotalsLine(a grid.Aggregates) string {
	noun := "deals"
	if a.Count == 1 {
		noun = "deal"
	}

	return strconv.Itoa(a.Count) + " " + noun +
		"  total " + FormatCurrency(a.TotalAmount) +
		"  avg probability " + strconv.Itoa(a.AvgProbability) + "%"
}
