package cli

import (
	"strings"

	"github.com/calvinalkan/dealgrid/internal/grid"
	"github.com/calvinalkan/dealgrid/internal/view"
)

const columnGap = "  "

// printTable writes the derived view of e as an aligned text table followed
// by the totals line.
func printTable(o *IO, e *grid.Engine) {
	cols := e.VisibleColumns()
	sort := e.Snapshot().SortConfigs()

	cells := make([]string, len(cols))

	for i, col := range cols {
		cells[i] = view.Fit(view.HeaderLabel(col, sort), view.Chars(col), view.KindOf(col.Type).Align())
	}

	o.Println(strings.TrimRight(strings.Join(cells, columnGap), " "))

	rows := e.Rows()
	if len(rows) == 0 {
		o.Println(view.EmptyText)
		return
	}

	for r := range rows {
		for i, col := range cols {
			cells[i] = view.Fit(view.FormatCell(col, &rows[r]), view.Chars(col), view.KindOf(col.Type).Align())
		}

		o.Println(strings.TrimRight(strings.Join(cells, columnGap), " "))
	}

	o.Println()
	o.Println(view.TotalsLine(e.Aggregates()))
}
