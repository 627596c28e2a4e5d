package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/export"
)

func Test_WriteXLSX_Writes_Header_And_Visible_Columns_When_Exported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rows := deal.Sample()[:3]
	require.NoError(t, export.WriteXLSX(&buf, rows, deal.DefaultColumns()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	got, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, []string{
		"Deal Name", "Company", "Owner", "Status", "Priority",
		"Amount", "Probability", "Close Date", "Last Activity",
	}, got[0])
	assert.Equal(t, "Cloud Infrastructure Migration", got[3][0])
	assert.Equal(t, "2024-09-30", got[3][7])

	raw, err := f.GetCellValue(export.SheetName, "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "125000", raw)

	prob, err := f.GetCellValue(export.SheetName, "G4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "75", prob)
}

func Test_WriteXLSX_Writes_Only_Header_When_No_Rows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cols := deal.DefaultColumns()
	cols[1].Visible = false

	require.NoError(t, export.WriteXLSX(&buf, nil, cols))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	got, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 8)
	assert.NotContains(t, got[0], "Company")
}
