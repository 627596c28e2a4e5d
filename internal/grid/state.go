package grid

import (
	"context"
	"maps"
	"slices"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// ViewState is the persisted subset of engine state. Selection and expansion
// are session-local and never part of it.
type ViewState struct {
	SortConfigs SortConfig          `json:"sortConfigs"`
	Filters     FilterConfig        `json:"filters"`
	Columns     []deal.ColumnConfig `json:"columns"`
}

// Clone returns a deep copy.
func (v ViewState) Clone() ViewState {
	return ViewState{
		SortConfigs: v.SortConfigs.Clone(),
		Filters:     v.Filters.Clone(),
		Columns:     slices.Clone(v.Columns),
	}
}

// PartialViewState is what a store could recover. Nil fields were absent or
// unusable and fall back to defaults independently.
type PartialViewState struct {
	SortConfigs *SortConfig
	Filters     *FilterConfig
	Columns     []deal.ColumnConfig
}

// Merge fills every absent field of p from defaults.
func (p PartialViewState) Merge(defaults ViewState) ViewState {
	out := defaults.Clone()

	if p.SortConfigs != nil {
		out.SortConfigs = p.SortConfigs.Clone()
	}

	if p.Filters != nil {
		out.Filters = p.Filters.Clone()
	}

	if p.Columns != nil {
		out.Columns = slices.Clone(p.Columns)
	}

	return out
}

// Store loads and saves view preferences. Load reports false when nothing
// usable was stored; it never fails outward. Save is fire-and-forget.
type Store interface {
	Load(ctx context.Context) (PartialViewState, bool)
	Save(state ViewState)
}

// Snapshot is an immutable view of engine state. Accessors return copies.
type Snapshot struct {
	sort     SortConfig
	filters  FilterConfig
	columns  []deal.ColumnConfig
	selected map[string]struct{}
	expanded map[string]struct{}
}

// SortConfigs returns the current sort keys in priority order.
func (s Snapshot) SortConfigs() SortConfig { return s.sort.Clone() }

// Filters returns the current filter configuration.
func (s Snapshot) Filters() FilterConfig { return s.filters.Clone() }

// Columns returns the column layout in display order.
func (s Snapshot) Columns() []deal.ColumnConfig { return slices.Clone(s.columns) }

// IsSelected reports whether id is checked.
func (s Snapshot) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the checked ids, sorted.
func (s Snapshot) SelectedIDs() []string {
	return slices.Sorted(maps.Keys(s.selected))
}

// SelectedCount returns the number of checked ids.
func (s Snapshot) SelectedCount() int { return len(s.selected) }

// IsExpanded reports whether id shows its detail row.
func (s Snapshot) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// ExpandedIDs returns the expanded ids, sorted.
func (s Snapshot) ExpandedIDs() []string {
	return slices.Sorted(maps.Keys(s.expanded))
}

// ViewState returns the persisted subset.
func (s Snapshot) ViewState() ViewState {
	return ViewState{
		SortConfigs: s.sort.Clone(),
		Filters:     s.filters.Clone(),
		Columns:     slices.Clone(s.columns),
	}
}
