// Package export writes the derived view of a grid to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// SheetName is the worksheet the rows are written to.
const SheetName = "Deals"

// pixelsPerChar converts grid pixel widths to spreadsheet column widths.
const pixelsPerChar = 7.0

// WriteXLSX writes rows as a workbook with one header row and one row per
// deal. Only visible columns are written, in layout order. Amount and
// probability cells stay numeric; dates stay ISO strings.
func WriteXLSX(w io.Writer, rows []deal.Deal, cols []deal.ColumnConfig) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 5}) // builtin whole-dollar currency
	if err != nil {
		return fmt.Errorf("create currency style: %w", err)
	}

	visible := deal.VisibleColumns(cols)

	for c, col := range visible {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}

		if err := f.SetCellValue(SheetName, cell, col.Label); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}

		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}

		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}

		if err := f.SetColWidth(SheetName, name, name, float64(col.Width)/pixelsPerChar); err != nil {
			return fmt.Errorf("set width %s: %w", name, err)
		}
	}

	for r := range rows {
		for c, col := range visible {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}

			if err := f.SetCellValue(SheetName, cell, cellValue(col, &rows[r])); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}

			if col.Type == deal.TypeCurrency {
				if err := f.SetCellStyle(SheetName, cell, cell, currencyStyle); err != nil {
					return fmt.Errorf("style %s: %w", cell, err)
				}
			}
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

// cellValue keeps numbers numeric and everything else as raw text.
func cellValue(col deal.ColumnConfig, d *deal.Deal) any {
	v := col.Key.Get(d)
	if v.IsNumber() {
		return v.Num()
	}

	return v.String()
}
