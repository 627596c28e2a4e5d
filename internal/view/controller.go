package view

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

// EmptyText is shown instead of a table body when no row matches.
const EmptyText = "No results. Try adjusting filters."

// DetailActivities is how many activities an expanded row shows.
const DetailActivities = 3

// DefaultPageSize is the PageUp/PageDown step.
const DefaultPageSize = 10

// Controller drives a grid.Engine from discrete UI events: keys, clicks,
// pointer moves. It owns focus, the open editor, in-flight gestures and the
// context menu. Like the engine it runs on a single event loop.
type Controller struct {
	engine *grid.Engine
	log    *zap.Logger
	commit CommitFunc
	now    func() time.Time
	page   int

	focused bool
	focus   Cell
	edit    *EditSession
	resize  ResizeGesture
	drag    DragGesture
	menu    *ContextMenu
	closed  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCommit replaces the default edit journal.
func WithCommit(f CommitFunc) Option {
	return func(c *Controller) {
		if f != nil {
			c.commit = f
		}
	}
}

// WithPageSize sets the PageUp/PageDown step.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.page = n
		}
	}
}

// WithClock overrides time.Now for edit timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController returns a controller over e. Without WithCommit, edits are
// recorded in a Journal that only logs them.
func NewController(e *grid.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine: e,
		log:    zap.NewNop(),
		now:    time.Now,
		page:   DefaultPageSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.commit == nil {
		c.commit = NewJournal(c.log).Commit
	}

	return c
}

// Engine returns the underlying engine.
func (c *Controller) Engine() *grid.Engine { return c.engine }

// Rows returns the derived view.
func (c *Controller) Rows() []deal.Deal { return c.engine.Rows() }

// Columns returns the visible columns, with the preview width of an active
// resize applied.
func (c *Controller) Columns() []deal.ColumnConfig {
	cols := c.engine.VisibleColumns()

	if key, width, ok := c.resize.Active(); ok {
		if i := deal.ColumnIndex(cols, key); i >= 0 {
			cols[i].Width = width
		}
	}

	return cols
}

// EmptyState returns the placeholder text when the derived view is empty.
func (c *Controller) EmptyState() (string, bool) {
	if len(c.engine.RowIDs()) == 0 {
		return EmptyText, true
	}

	return "", false
}

// Focus returns the focused cell.
func (c *Controller) Focus() (Cell, bool) { return c.focus, c.focused }

// FocusCell focuses the cell at row, col, clamped into the grid. It reports
// false when the grid has no cells.
func (c *Controller) FocusCell(row, col int) bool {
	rows, cols := c.dims()
	if rows == 0 || cols == 0 {
		c.focused = false
		return false
	}

	c.focus = Cell{Row: row, Col: col}.clamp(rows, cols)
	c.focused = true

	return true
}

// ClearFocus removes focus.
func (c *Controller) ClearFocus() { c.focused = false }

func (c *Controller) dims() (rows, cols int) {
	return len(c.engine.RowIDs()), len(c.engine.VisibleColumns())
}

// HandleKey applies a key press. Without focus, navigation keys do nothing.
// While an editor is open, Enter commits and Escape cancels; Escape also
// clears focus.
func (c *Controller) HandleKey(ctx context.Context, k Key) error {
	if c.closed {
		return ErrClosed
	}

	if c.menu != nil && k == KeyEscape {
		c.CloseMenu()
		return nil
	}

	if c.edit != nil {
		switch k {
		case KeyEnter:
			return c.CommitEdit(ctx)
		case KeyEscape:
			c.CancelEdit()
			c.ClearFocus()
		}

		return nil
	}

	if !c.focused {
		return nil
	}

	switch k {
	case KeyEnter:
		return c.BeginEdit(c.focus.Row, c.focus.Col)
	case KeyEscape:
		c.ClearFocus()
	default:
		rows, cols := c.dims()
		c.focus = c.focus.Move(k, rows, cols, c.page)
	}

	return nil
}

// ClickCell focuses a cell. A click on a status cell also opens its editor.
func (c *Controller) ClickCell(row, col int) error {
	if !c.FocusCell(row, col) {
		return nil
	}

	cols := c.engine.VisibleColumns()
	if cols[c.focus.Col].Type == deal.TypeStatus {
		return c.BeginEdit(c.focus.Row, c.focus.Col)
	}

	return nil
}

// DoubleClickCell focuses a cell and opens its editor.
func (c *Controller) DoubleClickCell(row, col int) error {
	if !c.FocusCell(row, col) {
		return nil
	}

	return c.BeginEdit(c.focus.Row, c.focus.Col)
}

// BeginEdit opens the editor for the cell at row, col. An editor already
// open elsewhere is discarded.
func (c *Controller) BeginEdit(row, col int) error {
	if c.closed {
		return ErrClosed
	}

	rows := c.engine.Rows()
	cols := c.engine.VisibleColumns()

	if row < 0 || row >= len(rows) || col < 0 || col >= len(cols) {
		return fmt.Errorf("%w: cell %d,%d", ErrOutOfRange, row, col)
	}

	s := newEditSession(&rows[row], cols[col])
	c.edit = &s

	return nil
}

// Editing returns the open editor.
func (c *Controller) Editing() (EditSession, bool) {
	if c.edit == nil {
		return EditSession{}, false
	}

	return *c.edit, true
}

// SetEditValue replaces the editor's current value.
func (c *Controller) SetEditValue(v string) error {
	if c.edit == nil {
		return ErrNotEditing
	}

	c.edit.Value = v

	return nil
}

// CommitEdit closes the editor and hands a changed value to the commit
// hook. The editor is closed even when the value is rejected.
func (c *Controller) CommitEdit(ctx context.Context) error {
	if c.edit == nil {
		return ErrNotEditing
	}

	s := *c.edit
	c.edit = nil

	if err := s.check(); err != nil {
		c.log.Debug("edit rejected", zap.Error(err))
		return err
	}

	if s.Value == s.Original {
		return nil
	}

	return c.commit(ctx, Edit{
		ID:     uuid.New(),
		Target: s.Target,
		Old:    s.Original,
		New:    s.Value,
		At:     c.now(),
	})
}

// CancelEdit closes the editor without committing.
func (c *Controller) CancelEdit() { c.edit = nil }

// ClickHeader cycles the sort of key. shift adds key to a multi-key sort.
func (c *Controller) ClickHeader(key deal.Field, shift bool) {
	c.engine.ToggleSort(key, shift)
	c.sync()
}

// SortBy sets the sort of key directly.
func (c *Controller) SortBy(key deal.Field, dir grid.Direction, additive bool) {
	c.engine.SetSort(key, dir, additive)
	c.sync()
}

// UpdateFilters merges patch into the filters.
func (c *Controller) UpdateFilters(patch grid.FilterPatch) {
	c.engine.UpdateFilters(patch)
	c.sync()
}

// ClearFilters removes every filter.
func (c *Controller) ClearFilters() {
	c.engine.ClearFilters()
	c.sync()
}

// ToggleSelection toggles the checkbox of row id.
func (c *Controller) ToggleSelection(id string, additive bool) {
	c.engine.ToggleRowSelection(id, additive)
}

// SelectAll checks or clears every row of the derived view.
func (c *Controller) SelectAll(all bool) {
	c.engine.SelectAllRows(all)
}

// ToggleExpansion shows or hides the detail row of id.
func (c *Controller) ToggleExpansion(id string) {
	c.engine.ToggleRowExpansion(id)
}

// Detail is the content of an expanded row.
type Detail struct {
	Tags       []string
	Source     string
	Notes      string
	Activities []deal.Activity
}

// Detail returns the expanded-row content for id.
func (c *Controller) Detail(id string) (Detail, bool) {
	d, ok := c.engine.Record(id)
	if !ok {
		return Detail{}, false
	}

	return Detail{
		Tags:       slices.Clone(d.Tags),
		Source:     d.Source,
		Notes:      d.Notes,
		Activities: slices.Clone(d.RecentActivities(DetailActivities)),
	}, true
}

// BeginResize starts resizing key with the pointer at x.
func (c *Controller) BeginResize(key deal.Field, x int) error {
	if c.closed {
		return ErrClosed
	}

	cols := c.engine.Columns()

	i := deal.ColumnIndex(cols, key)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}

	return c.resize.Begin(key, x, cols[i].Width)
}

// MoveResize updates the preview width for pointer position x.
func (c *Controller) MoveResize(x int) (int, error) { return c.resize.Move(x) }

// EndResize commits the previewed width.
func (c *Controller) EndResize() error {
	key, width, err := c.resize.End()
	if err != nil {
		return err
	}

	cols := c.engine.Columns()
	if i := deal.ColumnIndex(cols, key); i >= 0 {
		cols[i].Width = width
		c.engine.UpdateColumns(cols)
	}

	return nil
}

// CancelResize abandons an in-flight resize.
func (c *Controller) CancelResize() { c.resize.Cancel() }

// Resizing reports the column and preview width of an in-flight resize.
func (c *Controller) Resizing() (deal.Field, int, bool) { return c.resize.Active() }

// BeginDrag picks up the column at index from of the full layout.
func (c *Controller) BeginDrag(from int) error {
	if c.closed {
		return ErrClosed
	}

	if n := len(c.engine.Columns()); from < 0 || from >= n {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, from, n)
	}

	return c.drag.Begin(from)
}

// Drop moves the dragged column to index to and commits the layout.
func (c *Controller) Drop(to int) error {
	from, err := c.drag.Drop()
	if err != nil {
		return err
	}

	cols := c.engine.Columns()
	if to < 0 || to >= len(cols) {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, to, len(cols))
	}

	c.engine.UpdateColumns(deal.MoveColumn(cols, from, to))
	c.sync()

	return nil
}

// CancelDrag abandons an in-flight drag.
func (c *Controller) CancelDrag() { c.drag.Cancel() }

// ColumnManager opens a staging editor over the current layout.
func (c *Controller) ColumnManager() *ColumnManager {
	return NewColumnManager(c.engine.Columns(), func(cols []deal.ColumnConfig) {
		c.engine.UpdateColumns(cols)
		c.sync()
	})
}

// OpenMenu opens a context menu on target at x, y, replacing any open menu.
// Targets that are not on screen are rejected.
func (c *Controller) OpenMenu(x, y int, target MenuTarget) error {
	if c.closed {
		return ErrClosed
	}

	if !c.targetLive(target) {
		return fmt.Errorf("%w: %s %q", ErrStaleTarget, target.Type, target.Key)
	}

	c.menu = &ContextMenu{X: x, Y: y, Target: target}

	return nil
}

// Menu returns the open context menu.
func (c *Controller) Menu() (ContextMenu, bool) {
	if c.menu == nil {
		return ContextMenu{}, false
	}

	return *c.menu, true
}

// CloseMenu closes the context menu.
func (c *Controller) CloseMenu() { c.menu = nil }

// ClickOutside handles a click that landed outside the context menu.
func (c *Controller) ClickOutside() { c.CloseMenu() }

// RunMenuAction performs a on the open menu's target and closes the menu.
// Row actions are placeholders that only log.
func (c *Controller) RunMenuAction(a MenuAction) error {
	if c.menu == nil {
		return ErrNoMenu
	}

	m := *c.menu
	c.menu = nil

	if !m.Offers(a) {
		return fmt.Errorf("%w: %s on %s", ErrUnknownAction, a, m.Target.Type)
	}

	key := deal.Field(m.Target.Key)

	switch a {
	case ActionHide:
		cols := c.engine.Columns()
		if i := deal.ColumnIndex(cols, key); i >= 0 {
			cols[i].Visible = false
			c.engine.UpdateColumns(cols)
		}
	case ActionSortAsc:
		c.engine.SetSort(key, grid.Asc, false)
	case ActionSortDesc:
		c.engine.SetSort(key, grid.Desc, false)
	default:
		c.log.Info("row action", zap.String("action", string(a)), zap.String("row", m.Target.Key))
	}

	c.sync()

	return nil
}

func (c *Controller) targetLive(t MenuTarget) bool {
	switch t.Type {
	case TargetColumn:
		return deal.ColumnIndex(c.engine.VisibleColumns(), deal.Field(t.Key)) >= 0
	case TargetRow:
		return slices.Contains(c.engine.RowIDs(), t.Key)
	default:
		return false
	}
}

// Revalidate closes a menu whose target is gone, drops an editor whose cell
// is gone and re-clamps focus. Mutations through the controller call it
// already; call it after mutating the engine directly.
func (c *Controller) Revalidate() { c.sync() }

func (c *Controller) sync() {
	if c.menu != nil && !c.targetLive(c.menu.Target) {
		c.menu = nil
	}

	if c.edit != nil {
		rowLive := slices.Contains(c.engine.RowIDs(), c.edit.Target.RowID)
		colLive := deal.ColumnIndex(c.engine.VisibleColumns(), c.edit.Target.Column) >= 0

		if !rowLive || !colLive {
			c.edit = nil
		}
	}

	if c.focused {
		rows, cols := c.dims()
		if rows == 0 || cols == 0 {
			c.focused = false
		} else {
			c.focus = c.focus.clamp(rows, cols)
		}
	}
}

// Close ends every gesture, the editor and the menu. Further input is
// rejected with ErrClosed.
func (c *Controller) Close() {
	c.resize.Cancel()
	c.drag.Cancel()
	c.edit = nil
	c.menu = nil
	c.focused = false
	c.closed = true
}
