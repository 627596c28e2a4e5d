package view

import (
	"fmt"
	"slices"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// ColumnManager stages visibility and order changes to a column layout.
// Nothing reaches the engine until Save.
type ColumnManager struct {
	base   []deal.ColumnConfig
	staged []deal.ColumnConfig
	commit func([]deal.ColumnConfig)
}

// NewColumnManager stages edits on a copy of cols. commit receives the
// staged layout on Save.
func NewColumnManager(cols []deal.ColumnConfig, commit func([]deal.ColumnConfig)) *ColumnManager {
	return &ColumnManager{
		base:   slices.Clone(cols),
		staged: slices.Clone(cols),
		commit: commit,
	}
}

// Columns returns the staged layout.
func (m *ColumnManager) Columns() []deal.ColumnConfig { return slices.Clone(m.staged) }

// Dirty reports whether the staged layout differs from the original.
func (m *ColumnManager) Dirty() bool { return !slices.Equal(m.base, m.staged) }

// ToggleVisibility flips the Visible flag of key.
func (m *ColumnManager) ToggleVisibility(key deal.Field) error {
	i := deal.ColumnIndex(m.staged, key)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}

	m.staged[i].Visible = !m.staged[i].Visible

	return nil
}

// Move reorders the staged layout.
func (m *ColumnManager) Move(from, to int) error {
	if from < 0 || from >= len(m.staged) || to < 0 || to >= len(m.staged) {
		return fmt.Errorf("%w: %d -> %d", ErrOutOfRange, from, to)
	}

	m.staged = deal.MoveColumn(m.staged, from, to)

	return nil
}

// Save hands the staged layout to the commit function and makes it the new
// baseline.
func (m *ColumnManager) Save() {
	if m.commit != nil {
		m.commit(slices.Clone(m.staged))
	}

	m.base = slices.Clone(m.staged)
}

// Cancel discards staged changes.
func (m *ColumnManager) Cancel() { m.staged = slices.Clone(m.base) }
