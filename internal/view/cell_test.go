package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
	"github.com/calvinalkan/dealgrid/internal/view"
)

func Test_FormatCurrency_Renders_Whole_Dollars_When_Formatted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{280000, "$280,000"},
		{15000, "$15,000"},
		{999.6, "$1,000"},
		{0, "$0"},
		{1234567, "$1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, view.FormatCurrency(tt.in), "amount %v", tt.in)
	}
}

func Test_FormatDate_Uses_Short_Month_When_Date_Valid(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Sep 15, 2024", view.FormatDate("2024-09-15"))
	assert.Equal(t, "Aug 1, 2024", view.FormatDate("2024-08-01"))
	assert.Equal(t, "someday", view.FormatDate("someday"))
}

func Test_ChipTone_Falls_Back_To_Neutral_When_Value_Unknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, view.ToneGreen, view.ChipTone("Won"))
	assert.Equal(t, view.ToneRed, view.ChipTone("Critical"))
	assert.Equal(t, view.TonePurple, view.ChipTone("Proposal"))
	assert.Equal(t, view.ToneNeutral, view.ChipTone("Pending"))
	assert.Equal(t, view.ToneNeutral, view.ChipTone(""))
}

func Test_FormatCell_Dispatches_On_Display_Type_When_Rendered(t *testing.T) {
	t.Parallel()

	d := deal.Sample()[2]
	cols := deal.DefaultColumns()

	want := map[deal.Field]string{
		deal.FieldDealName:     "Cloud Infrastructure Migration",
		deal.FieldStatus:       "Proposal",
		deal.FieldAmount:       "$280,000",
		deal.FieldProbability:  "75%",
		deal.FieldCloseDate:    "Sep 30, 2024",
		deal.FieldLastActivity: "Aug 16, 2024",
	}

	for key, w := range want {
		col := cols[deal.ColumnIndex(cols, key)]
		assert.Equal(t, w, view.FormatCell(col, &d), "column %s", key)
	}
}

func Test_KindOf_Selects_Editor_By_Type_And_Key_When_Editing(t *testing.T) {
	t.Parallel()

	status := view.KindOf(deal.TypeStatus)

	spec := status.Editor(deal.FieldStatus)
	assert.Equal(t, view.EditorChoice, spec.Kind)
	assert.Equal(t, []string{"New", "Qualified", "Proposal", "Negotiation", "Won", "Lost"}, spec.Options)

	spec = status.Editor(deal.FieldPriority)
	assert.Equal(t, []string{"Low", "Medium", "High", "Critical"}, spec.Options)
	assert.True(t, status.Chip())

	assert.Equal(t, view.EditorNumber, view.KindOf(deal.TypeCurrency).Editor(deal.FieldAmount).Kind)
	assert.Equal(t, view.EditorText, view.KindOf(deal.TypeDate).Editor(deal.FieldCloseDate).Kind)
	assert.Equal(t, view.EditorText, view.KindOf("mystery").Editor(deal.FieldNotes).Kind)
	assert.Equal(t, view.AlignRight, view.KindOf(deal.TypeCurrency).Align())
	assert.Equal(t, deal.TypeText, view.KindOf("mystery").Type())
}

func Test_Cell_Move_Clamps_Without_Wrapping_When_At_Edges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from view.Cell
		key  view.Key
		want view.Cell
	}{
		{"up at top", view.Cell{Row: 0, Col: 2}, view.KeyUp, view.Cell{Row: 0, Col: 2}},
		{"down", view.Cell{Row: 0, Col: 2}, view.KeyDown, view.Cell{Row: 1, Col: 2}},
		{"down at bottom", view.Cell{Row: 7, Col: 0}, view.KeyDown, view.Cell{Row: 7, Col: 0}},
		{"left at start", view.Cell{Row: 3, Col: 0}, view.KeyLeft, view.Cell{Row: 3, Col: 0}},
		{"right at end", view.Cell{Row: 3, Col: 4}, view.KeyRight, view.Cell{Row: 3, Col: 4}},
		{"home", view.Cell{Row: 3, Col: 3}, view.KeyHome, view.Cell{Row: 3, Col: 0}},
		{"end", view.Cell{Row: 3, Col: 1}, view.KeyEnd, view.Cell{Row: 3, Col: 4}},
		{"page down clamps", view.Cell{Row: 5, Col: 1}, view.KeyPageDown, view.Cell{Row: 7, Col: 1}},
		{"page up clamps", view.Cell{Row: 2, Col: 1}, view.KeyPageUp, view.Cell{Row: 0, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.from.Move(tt.key, 8, 5, 3))
		})
	}
}

func Test_ResizeWidth_Never_Drops_Below_Minimum_When_Dragged_Left(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 150, view.ResizeWidth(120, 100, 130))
	assert.Equal(t, deal.MinColumnWidth, view.ResizeWidth(120, 100, 0))
	assert.Equal(t, 120, view.ResizeWidth(120, 100, 100))
}

func Test_ResizeGesture_Allows_One_In_Flight_When_Begun_Twice(t *testing.T) {
	t.Parallel()

	var g view.ResizeGesture

	assert.NoError(t, g.Begin(deal.FieldAmount, 10, 120))
	assert.ErrorIs(t, g.Begin(deal.FieldOwner, 10, 150), view.ErrGestureActive)

	w, err := g.Move(-500)
	assert.NoError(t, err)
	assert.Equal(t, deal.MinColumnWidth, w)

	key, w, err := g.End()
	assert.NoError(t, err)
	assert.Equal(t, deal.FieldAmount, key)
	assert.Equal(t, deal.MinColumnWidth, w)

	_, err = g.Move(5)
	assert.ErrorIs(t, err, view.ErrNoGesture)

	_, _, err = g.End()
	assert.ErrorIs(t, err, view.ErrNoGesture)
}

func Test_ContextMenu_Offers_Actions_By_Target_Type_When_Opened(t *testing.T) {
	t.Parallel()

	col := view.ContextMenu{Target: view.MenuTarget{Type: view.TargetColumn, Key: "amount"}}
	row := view.ContextMenu{Target: view.MenuTarget{Type: view.TargetRow, Key: "1"}}

	assert.Equal(t, []view.MenuAction{view.ActionHide, view.ActionSortAsc, view.ActionSortDesc}, col.Actions())
	assert.Equal(t, []view.MenuAction{view.ActionEdit, view.ActionDuplicate, view.ActionDelete}, row.Actions())
	assert.False(t, row.Offers(view.ActionHide))
	assert.Equal(t, "Sort Descending", view.ActionSortDesc.Label())
}

func Test_Fit_Pads_Or_Truncates_When_Width_Differs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Won   ", view.Fit("Won", 6, view.AlignLeft))
	assert.Equal(t, "   $15", view.Fit("$15", 6, view.AlignRight))
	assert.Equal(t, "Cloud…", view.Fit("Cloud Infrastructure", 6, view.AlignLeft))
	assert.Empty(t, view.Fit("x", 0, view.AlignLeft))
}

func Test_HeaderLabel_Shows_Arrow_And_Priority_When_Sorted(t *testing.T) {
	t.Parallel()

	cols := deal.DefaultColumns()
	amount := cols[deal.ColumnIndex(cols, deal.FieldAmount)]
	owner := cols[deal.ColumnIndex(cols, deal.FieldOwner)]

	single := grid.SortConfig{{Key: deal.FieldAmount, Direction: grid.Desc}}
	multi := grid.SortConfig{{Key: deal.FieldOwner, Direction: grid.Asc}, {Key: deal.FieldAmount, Direction: grid.Desc}}

	assert.Equal(t, "Amount ↓", view.HeaderLabel(amount, single))
	assert.Equal(t, "Owner", view.HeaderLabel(owner, single))
	assert.Equal(t, "Amount ↓2", view.HeaderLabel(amount, multi))
	assert.Equal(t, "Owner ↑1", view.HeaderLabel(owner, multi))
}

func Test_TotalsLine_Summarizes_Aggregates_When_Rendered(t *testing.T) {
	t.Parallel()

	got := view.TotalsLine(grid.Summarize(deal.Sample()))
	assert.Equal(t, "8 deals  total $1,035,000  avg probability 60%", got)
	assert.Equal(t, "0 deals  total $0  avg probability 0%", view.TotalsLine(grid.Aggregates{}))
}
