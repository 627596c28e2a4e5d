package view_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
	"github.com/calvinalkan/dealgrid/internal/view"
)

func newController(t *testing.T, opts ...view.Option) *view.Controller {
	t.Helper()

	e, err := grid.New(t.Context(), deal.Sample(), grid.ViewState{Columns: deal.DefaultColumns()})
	require.NoError(t, err)

	c := view.NewController(e, opts...)
	t.Cleanup(c.Close)

	return c
}

// Visible column order of the default layout:
// 0 dealName, 1 company, 2 owner, 3 status, 4 priority, 5 amount,
// 6 probability, 7 closeDate, 8 lastActivity.

func Test_Controller_HandleKey_Ignores_Navigation_When_Nothing_Focused(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.HandleKey(t.Context(), view.KeyDown))
	require.NoError(t, c.HandleKey(t.Context(), view.KeyEnter))

	_, focused := c.Focus()
	assert.False(t, focused)

	_, editing := c.Editing()
	assert.False(t, editing)
}

func Test_Controller_HandleKey_Clamps_Focus_When_Navigating_Past_Edges(t *testing.T) {
	t.Parallel()

	c := newController(t)
	require.True(t, c.FocusCell(0, 0))

	ctx := t.Context()
	require.NoError(t, c.HandleKey(ctx, view.KeyUp))
	require.NoError(t, c.HandleKey(ctx, view.KeyLeft))

	cell, _ := c.Focus()
	assert.Equal(t, view.Cell{Row: 0, Col: 0}, cell)

	for range 20 {
		require.NoError(t, c.HandleKey(ctx, view.KeyDown))
		require.NoError(t, c.HandleKey(ctx, view.KeyRight))
	}

	cell, _ = c.Focus()
	assert.Equal(t, view.Cell{Row: 7, Col: 8}, cell)
}

func Test_Controller_Enter_Opens_Editor_And_Escape_Clears_Focus_When_Editing(t *testing.T) {
	t.Parallel()

	c := newController(t)
	ctx := t.Context()

	c.FocusCell(2, 5)
	require.NoError(t, c.HandleKey(ctx, view.KeyEnter))

	s, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, view.EditTarget{RowID: "3", Column: deal.FieldAmount}, s.Target)
	assert.Equal(t, view.EditorNumber, s.Editor.Kind)
	assert.Equal(t, "280000", s.Value)

	require.NoError(t, c.HandleKey(ctx, view.KeyEscape))

	_, ok = c.Editing()
	assert.False(t, ok)

	_, focused := c.Focus()
	assert.False(t, focused)
}

func Test_Controller_CommitEdit_Calls_Hook_Without_Mutating_Records_When_Value_Changed(t *testing.T) {
	t.Parallel()

	var got []view.Edit

	at := time.Date(2024, 8, 20, 9, 0, 0, 0, time.UTC)
	c := newController(t,
		view.WithCommit(func(_ context.Context, e view.Edit) error {
			got = append(got, e)
			return nil
		}),
		view.WithClock(func() time.Time { return at }),
	)

	require.NoError(t, c.ClickCell(0, 3)) // status cell opens its editor on click

	s, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, view.EditorChoice, s.Editor.Kind)

	require.NoError(t, c.SetEditValue("Won"))
	require.NoError(t, c.HandleKey(t.Context(), view.KeyEnter))

	require.Len(t, got, 1)
	assert.Equal(t, view.EditTarget{RowID: "1", Column: deal.FieldStatus}, got[0].Target)
	assert.Equal(t, "Negotiation", got[0].Old)
	assert.Equal(t, "Won", got[0].New)
	assert.Equal(t, at, got[0].At)
	assert.NotZero(t, got[0].ID)

	_, ok = c.Editing()
	assert.False(t, ok)

	rec, _ := c.Engine().Record("1")
	assert.Equal(t, deal.StatusNegotiation, rec.Status)
}

func Test_Controller_CommitEdit_Rejects_And_Closes_When_Value_Invalid(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.DoubleClickCell(0, 4))
	require.NoError(t, c.SetEditValue("Urgent"))
	require.ErrorIs(t, c.CommitEdit(t.Context()), view.ErrInvalidChoice)

	_, ok := c.Editing()
	assert.False(t, ok)

	require.NoError(t, c.DoubleClickCell(0, 5))
	require.NoError(t, c.SetEditValue("lots"))
	require.ErrorIs(t, c.CommitEdit(t.Context()), view.ErrInvalidNumber)

	require.ErrorIs(t, c.CommitEdit(t.Context()), view.ErrNotEditing)
}

func Test_Controller_Default_Journal_Logs_Edit_When_Committed(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	c := newController(t, view.WithLogger(zap.New(core)))

	require.NoError(t, c.DoubleClickCell(1, 0))
	require.NoError(t, c.SetEditValue("Renamed"))
	require.NoError(t, c.CommitEdit(t.Context()))

	entries := logs.FilterMessage("edit recorded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Renamed", entries[0].ContextMap()["new"])
}

func Test_Controller_Commit_Error_Is_Returned_When_Hook_Fails(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := newController(t, view.WithCommit(func(context.Context, view.Edit) error { return boom }))

	require.NoError(t, c.DoubleClickCell(0, 0))
	require.NoError(t, c.SetEditValue("x"))
	require.ErrorIs(t, c.CommitEdit(t.Context()), boom)
}

func Test_Controller_Resize_Previews_And_Commits_Width_When_Released(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.BeginResize(deal.FieldAmount, 500))
	require.ErrorIs(t, c.BeginResize(deal.FieldOwner, 10), view.ErrGestureActive)

	w, err := c.MoveResize(560)
	require.NoError(t, err)
	assert.Equal(t, 180, w)
	assert.Equal(t, 180, c.Columns()[5].Width)
	assert.Equal(t, 120, c.Engine().Columns()[5].Width, "engine untouched until release")

	w, err = c.MoveResize(0)
	require.NoError(t, err)
	assert.Equal(t, deal.MinColumnWidth, w)

	_, _ = c.MoveResize(530)
	require.NoError(t, c.EndResize())
	assert.Equal(t, 150, c.Engine().Columns()[5].Width)

	_, _, active := c.Resizing()
	assert.False(t, active)
	require.ErrorIs(t, c.EndResize(), view.ErrNoGesture)
}

func Test_Controller_Close_Terminates_Gestures_When_Torn_Down(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.BeginResize(deal.FieldAmount, 0))
	require.NoError(t, c.BeginDrag(1))
	require.NoError(t, c.OpenMenu(1, 1, view.MenuTarget{Type: view.TargetRow, Key: "1"}))

	c.Close()

	_, _, active := c.Resizing()
	assert.False(t, active)

	_, open := c.Menu()
	assert.False(t, open)

	require.ErrorIs(t, c.Drop(0), view.ErrNoGesture)
	require.ErrorIs(t, c.HandleKey(t.Context(), view.KeyDown), view.ErrClosed)
	require.ErrorIs(t, c.BeginResize(deal.FieldAmount, 0), view.ErrClosed)
}

func Test_Controller_Drop_Reorders_Columns_When_Drag_Completes(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.BeginDrag(5))
	require.NoError(t, c.Drop(0))

	cols := c.Engine().Columns()
	assert.Equal(t, deal.FieldAmount, cols[0].Key)
	assert.Equal(t, deal.FieldDealName, cols[1].Key)

	require.ErrorIs(t, c.BeginDrag(99), view.ErrOutOfRange)
}

func Test_Controller_ColumnManager_Stages_Until_Saved_When_Editing_Layout(t *testing.T) {
	t.Parallel()

	c := newController(t)
	m := c.ColumnManager()

	require.NoError(t, m.ToggleVisibility(deal.FieldSource))
	require.NoError(t, m.Move(0, 1))
	assert.True(t, m.Dirty())
	assert.Len(t, c.Columns(), 9, "nothing applied before save")

	m.Cancel()
	assert.False(t, m.Dirty())

	require.NoError(t, m.ToggleVisibility(deal.FieldOwner))
	m.Save()

	assert.Len(t, c.Columns(), 8)
	assert.False(t, m.Dirty())
	require.ErrorIs(t, m.ToggleVisibility("bogus"), view.ErrUnknownColumn)
	require.ErrorIs(t, m.Move(0, 42), view.ErrOutOfRange)
}

func Test_Controller_Menu_Runs_Column_Actions_When_Chosen(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.OpenMenu(10, 20, view.MenuTarget{Type: view.TargetColumn, Key: "amount"}))

	m, ok := c.Menu()
	require.True(t, ok)
	assert.Equal(t, 10, m.X)

	require.NoError(t, c.RunMenuAction(view.ActionSortDesc))
	assert.Equal(t, "3", c.Engine().RowIDs()[0])

	_, ok = c.Menu()
	assert.False(t, ok, "menu closes after an action")

	require.NoError(t, c.OpenMenu(0, 0, view.MenuTarget{Type: view.TargetColumn, Key: "amount"}))
	require.NoError(t, c.RunMenuAction(view.ActionHide))
	assert.Equal(t, -1, deal.ColumnIndex(c.Columns(), deal.FieldAmount))

	require.ErrorIs(t, c.RunMenuAction(view.ActionHide), view.ErrNoMenu)
}

func Test_Controller_Menu_Closes_When_Escape_Or_Outside_Click_Or_Target_Gone(t *testing.T) {
	t.Parallel()

	c := newController(t)
	row := view.MenuTarget{Type: view.TargetRow, Key: "5"}

	require.NoError(t, c.OpenMenu(0, 0, row))
	require.NoError(t, c.HandleKey(t.Context(), view.KeyEscape))
	_, open := c.Menu()
	assert.False(t, open)

	require.NoError(t, c.OpenMenu(0, 0, row))
	c.ClickOutside()
	_, open = c.Menu()
	assert.False(t, open)

	require.NoError(t, c.OpenMenu(0, 0, row))
	c.UpdateFilters(grid.Patch().WithStatus(deal.StatusLost))
	_, open = c.Menu()
	assert.False(t, open, "row 5 filtered away")

	require.ErrorIs(t, c.OpenMenu(0, 0, row), view.ErrStaleTarget)
	require.ErrorIs(t, c.OpenMenu(0, 0, view.MenuTarget{Type: view.TargetColumn, Key: "source"}), view.ErrStaleTarget)
}

func Test_Controller_Row_Menu_Action_Only_Logs_When_Placeholder(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	c := newController(t, view.WithLogger(zap.New(core)))

	require.NoError(t, c.OpenMenu(0, 0, view.MenuTarget{Type: view.TargetRow, Key: "2"}))
	require.NoError(t, c.RunMenuAction(view.ActionDelete))

	assert.Len(t, c.Engine().Records(), 8)
	assert.Equal(t, 1, logs.FilterMessage("row action").Len())

	require.NoError(t, c.OpenMenu(0, 0, view.MenuTarget{Type: view.TargetRow, Key: "2"}))
	require.ErrorIs(t, c.RunMenuAction(view.ActionHide), view.ErrUnknownAction)
}

func Test_Controller_Reclamps_Focus_And_Shows_Empty_State_When_View_Shrinks(t *testing.T) {
	t.Parallel()

	c := newController(t)

	c.FocusCell(7, 8)
	c.UpdateFilters(grid.Patch().WithStatus(deal.StatusQualified))

	cell, focused := c.Focus()
	require.True(t, focused)
	assert.Equal(t, view.Cell{Row: 1, Col: 8}, cell)

	_, empty := c.EmptyState()
	assert.False(t, empty)

	c.UpdateFilters(grid.Patch().WithSearch("no such deal"))

	text, empty := c.EmptyState()
	assert.True(t, empty)
	assert.Equal(t, "No results. Try adjusting filters.", text)

	_, focused = c.Focus()
	assert.False(t, focused)
	assert.False(t, c.FocusCell(0, 0))
}

func Test_Controller_Drops_Editor_When_Edited_Row_Filtered_Out(t *testing.T) {
	t.Parallel()

	c := newController(t)

	require.NoError(t, c.DoubleClickCell(0, 0))
	c.UpdateFilters(grid.Patch().WithStatus(deal.StatusWon))

	_, ok := c.Editing()
	assert.False(t, ok)
}

func Test_Controller_Detail_Shows_First_Three_Activities_When_Expanded(t *testing.T) {
	t.Parallel()

	c := newController(t)
	c.ToggleExpansion("5")

	assert.True(t, c.Engine().Snapshot().IsExpanded("5"))

	d, ok := c.Detail("5")
	require.True(t, ok)
	assert.Len(t, d.Activities, 3)
	assert.Equal(t, "Contract signed", d.Activities[0].Description)
	assert.Equal(t, []string{"Analytics", "Dashboard", "Retail"}, d.Tags)

	_, ok = c.Detail("nope")
	assert.False(t, ok)
}

func Test_Controller_Selection_Passes_Through_When_Toggled(t *testing.T) {
	t.Parallel()

	c := newController(t)

	c.ToggleSelection("1", false)
	c.ToggleSelection("2", true)
	assert.Equal(t, []string{"1", "2"}, c.Engine().Snapshot().SelectedIDs())

	c.SelectAll(false)
	assert.Zero(t, c.Engine().Snapshot().SelectedCount())

	c.ClickHeader(deal.FieldAmount, false)
	c.ClickHeader(deal.FieldAmount, false)
	assert.Equal(t, "3", c.Rows()[0].ID)
}
