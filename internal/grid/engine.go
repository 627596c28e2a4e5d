package grid

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// Engine owns the interaction state of one grid over a fixed record
// collection. Every mutation replaces the current Snapshot; snapshots handed
// out earlier are never modified.
//
// Engine is not safe for concurrent use. It is driven from a single event
// loop.
type Engine struct {
	records []deal.Deal
	snap    Snapshot
	store   Store
	log     *zap.Logger

	// revisions bump whenever the input of Derive changes.
	filterRev uint64
	sortRev   uint64

	memo struct {
		valid     bool
		filterRev uint64
		sortRev   uint64
		rows      []deal.Deal
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches a preference store. Without one nothing is loaded or
// saved.
func WithStore(s Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New builds an engine over records. defaults supplies the initial sort,
// filters and column layout; fields recovered from the store replace their
// default independently. Invalid defaults are an error; invalid stored fields
// are dropped with a warning.
func New(ctx context.Context, records []deal.Deal, defaults ViewState, opts ...Option) (*Engine, error) {
	e := &Engine{
		records: slices.Clone(records),
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := deal.ValidateColumns(defaults.Columns); err != nil {
		return nil, fmt.Errorf("default columns: %w", err)
	}

	if err := defaults.SortConfigs.Validate(); err != nil {
		return nil, fmt.Errorf("default sort: %w", err)
	}

	if err := defaults.Filters.Validate(); err != nil {
		return nil, fmt.Errorf("default filters: %w", err)
	}

	state := defaults.Clone()

	if e.store != nil {
		if partial, ok := e.store.Load(ctx); ok {
			state = e.recover(partial, defaults)
		}
	}

	e.snap = Snapshot{
		sort:     state.SortConfigs,
		filters:  state.Filters,
		columns:  deal.NormalizeColumns(state.Columns),
		selected: map[string]struct{}{},
		expanded: map[string]struct{}{},
	}

	return e, nil
}

// recover merges partial over defaults, discarding fields that do not fit
// this engine.
func (e *Engine) recover(partial PartialViewState, defaults ViewState) ViewState {
	if partial.SortConfigs != nil {
		if err := partial.SortConfigs.Validate(); err != nil {
			e.log.Warn("stored sort discarded", zap.Error(err))
			partial.SortConfigs = nil
		}
	}

	if partial.Filters != nil {
		if err := partial.Filters.Validate(); err != nil {
			e.log.Warn("stored filters discarded", zap.Error(err))
			partial.Filters = nil
		}
	}

	if partial.Columns != nil {
		if err := deal.ValidateColumns(partial.Columns); err != nil {
			e.log.Warn("stored columns discarded", zap.Error(err))
			partial.Columns = nil
		}
	}

	return partial.Merge(defaults)
}

// Records returns the full collection in original order.
func (e *Engine) Records() []deal.Deal { return slices.Clone(e.records) }

// Record looks up a record of the collection by id.
func (e *Engine) Record(id string) (deal.Deal, bool) {
	i := slices.IndexFunc(e.records, func(d deal.Deal) bool { return d.ID == id })
	if i < 0 {
		return deal.Deal{}, false
	}

	return e.records[i], true
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot { return e.snap }

// Columns returns the column layout in display order.
func (e *Engine) Columns() []deal.ColumnConfig { return e.snap.Columns() }

// VisibleColumns returns the visible subset of the layout in display order.
func (e *Engine) VisibleColumns() []deal.ColumnConfig {
	return deal.VisibleColumns(e.snap.columns)
}

// Rows returns the derived view. The result is memoized and recomputed only
// after the filters or the sort changed. Records are shared with the
// collection and must be treated as read-only.
func (e *Engine) Rows() []deal.Deal {
	m := &e.memo
	if !m.valid || m.filterRev != e.filterRev || m.sortRev != e.sortRev {
		m.rows = Derive(e.records, e.snap.filters, e.snap.sort)
		m.filterRev, m.sortRev, m.valid = e.filterRev, e.sortRev, true
	}

	return slices.Clone(m.rows)
}

// RowIDs returns the ids of the derived view in order.
func (e *Engine) RowIDs() []string {
	rows := e.Rows()

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	return ids
}

// ToggleSort advances key through unsorted, asc, desc and back to unsorted.
// In single mode every other key is dropped; in multi mode other keys keep
// their positions. Unknown or unsortable keys are ignored.
func (e *Engine) ToggleSort(key deal.Field, multi bool) Snapshot {
	if !e.canSort(key) {
		return e.snap
	}

	e.setSortConfig(e.snap.sort.toggled(key, multi))

	return e.snap
}

// SetSort sets key to dir directly. additive=false replaces the sort;
// additive=true moves key to the lowest priority and keeps the rest.
func (e *Engine) SetSort(key deal.Field, dir Direction, additive bool) Snapshot {
	if !e.canSort(key) {
		return e.snap
	}

	if !dir.Valid() {
		e.log.Debug("sort direction ignored", zap.String("direction", string(dir)))
		return e.snap
	}

	e.setSortConfig(e.snap.sort.withSort(key, dir, additive))

	return e.snap
}

// ClearSort drops every sort key, restoring collection order.
func (e *Engine) ClearSort() Snapshot {
	if len(e.snap.sort) == 0 {
		return e.snap
	}

	e.setSortConfig(SortConfig{})

	return e.snap
}

func (e *Engine) canSort(key deal.Field) bool {
	if !key.Valid() || !key.Sortable() {
		e.log.Debug("sort key ignored", zap.String("key", string(key)))
		return false
	}

	if i := deal.ColumnIndex(e.snap.columns, key); i >= 0 && !e.snap.columns[i].Sortable {
		e.log.Debug("column not sortable", zap.String("key", string(key)))
		return false
	}

	return true
}

func (e *Engine) setSortConfig(s SortConfig) {
	next := e.snap
	next.sort = s
	e.snap = next
	e.sortRev++
	e.persist()
}

// UpdateFilters merges patch into the current filters. Fields the patch does
// not touch are kept. A patch that would produce an invalid filter is
// ignored.
func (e *Engine) UpdateFilters(patch FilterPatch) Snapshot {
	if patch.IsEmpty() {
		return e.snap
	}

	merged := patch.apply(e.snap.filters)
	if err := merged.Validate(); err != nil {
		e.log.Debug("filter update ignored", zap.Error(err))
		return e.snap
	}

	e.setFilters(merged)

	return e.snap
}

// ClearFilters removes every predicate.
func (e *Engine) ClearFilters() Snapshot {
	e.setFilters(FilterConfig{})
	return e.snap
}

func (e *Engine) setFilters(f FilterConfig) {
	next := e.snap
	next.filters = f
	e.snap = next
	e.filterRev++
	e.persist()
}

// ToggleRowSelection removes id if it is selected. Otherwise additive=false
// selects exactly id and additive=true adds it. Ids outside the collection
// are ignored.
func (e *Engine) ToggleRowSelection(id string, additive bool) Snapshot {
	if _, ok := e.Record(id); !ok {
		e.log.Debug("selection of unknown row ignored", zap.String("id", id))
		return e.snap
	}

	var sel map[string]struct{}

	switch _, selected := e.snap.selected[id]; {
	case selected:
		sel = maps.Clone(e.snap.selected)
		delete(sel, id)
	case additive:
		sel = maps.Clone(e.snap.selected)
		sel[id] = struct{}{}
	default:
		sel = map[string]struct{}{id: {}}
	}

	next := e.snap
	next.selected = sel
	e.snap = next

	return e.snap
}

// SelectAllRows selects exactly the rows of the derived view, or clears the
// selection.
func (e *Engine) SelectAllRows(all bool) Snapshot {
	sel := map[string]struct{}{}

	if all {
		for _, id := range e.RowIDs() {
			sel[id] = struct{}{}
		}
	}

	next := e.snap
	next.selected = sel
	e.snap = next

	return e.snap
}

// ToggleRowExpansion flips whether id shows its detail row.
func (e *Engine) ToggleRowExpansion(id string) Snapshot {
	if _, ok := e.Record(id); !ok {
		e.log.Debug("expansion of unknown row ignored", zap.String("id", id))
		return e.snap
	}

	exp := maps.Clone(e.snap.expanded)
	if _, ok := exp[id]; ok {
		delete(exp, id)
	} else {
		exp[id] = struct{}{}
	}

	next := e.snap
	next.expanded = exp
	e.snap = next

	return e.snap
}

// UpdateColumns replaces the column layout. An invalid sequence is ignored
// with a warning; widths below MinColumnWidth are raised to it.
func (e *Engine) UpdateColumns(cols []deal.ColumnConfig) Snapshot {
	if err := deal.ValidateColumns(cols); err != nil {
		e.log.Warn("column update ignored", zap.Error(err))
		return e.snap
	}

	next := e.snap
	next.columns = deal.NormalizeColumns(cols)
	e.snap = next
	e.persist()

	return e.snap
}

func (e *Engine) persist() {
	if e.store == nil {
		return
	}

	e.store.Save(e.snap.ViewState())
}

// Aggregates summarizes the derived view.
func (e *Engine) Aggregates() Aggregates { return Summarize(e.Rows()) }

// OwnerOptions returns the distinct owners of the full collection, sorted.
func (e *Engine) OwnerOptions() []string { return UniqueOwners(e.records) }

// SelectionState describes the selection relative to the derived view.
type SelectionState int

// SelectionState values.
const (
	SelectNone SelectionState = iota
	SelectSome
	SelectAll
)

func (s SelectionState) String() string {
	switch s {
	case SelectSome:
		return "some"
	case SelectAll:
		return "all"
	default:
		return "none"
	}
}

// SelectionState reports whether nothing, part or all of the derived view is
// selected. An empty view with a selection outside it reports SelectSome.
func (e *Engine) SelectionState() SelectionState {
	if len(e.snap.selected) == 0 {
		return SelectNone
	}

	ids := e.RowIDs()
	if len(ids) == 0 {
		return SelectSome
	}

	for _, id := range ids {
		if !e.snap.IsSelected(id) {
			return SelectSome
		}
	}

	return SelectAll
}

// SortIndicator reports the direction of key and its 1-based priority in the
// current sort. ok is false when key is not sorted.
func (e *Engine) SortIndicator(key deal.Field) (Direction, int, bool) {
	i := e.snap.sort.Index(key)
	if i < 0 {
		return "", 0, false
	}

	return e.snap.sort[i].Direction, i + 1, true
}
