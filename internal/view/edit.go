package view

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// EditTarget identifies the cell being edited.
type EditTarget struct {
	RowID  string
	Column deal.Field
}

// Edit is a committed cell change. Edits are proposals: the record
// collection itself is never modified.
type Edit struct {
	ID     uuid.UUID
	Target EditTarget
	Old    string
	New    string
	At     time.Time
}

// CommitFunc receives committed edits.
type CommitFunc func(ctx context.Context, e Edit) error

// EditSession is the state of an open cell editor.
type EditSession struct {
	Target   EditTarget
	Editor   EditorSpec
	Original string
	Value    string
}

// newEditSession opens an editor on col of d, prefilled with the raw value.
func newEditSession(d *deal.Deal, col deal.ColumnConfig) EditSession {
	raw := col.Key.Get(d).String()

	return EditSession{
		Target:   EditTarget{RowID: d.ID, Column: col.Key},
		Editor:   KindOf(col.Type).Editor(col.Key),
		Original: raw,
		Value:    raw,
	}
}

// check validates Value against the editor.
func (s *EditSession) check() error {
	v := strings.TrimSpace(s.Value)

	switch s.Editor.Kind {
	case EditorChoice:
		if !slices.Contains(s.Editor.Options, v) {
			return fmt.Errorf("%w: %q", ErrInvalidChoice, v)
		}
	case EditorNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidNumber, s.Target.Column, v)
		}
	}

	return nil
}

// Journal records committed edits in memory and logs each one. Its Commit
// method is the default CommitFunc.
type Journal struct {
	mu      sync.Mutex
	entries []Edit
	log     *zap.Logger
}

// NewJournal returns an empty journal logging to log.
func NewJournal(log *zap.Logger) *Journal {
	if log == nil {
		log = zap.NewNop()
	}

	return &Journal{log: log}
}

// Commit appends e. It never fails.
func (j *Journal) Commit(_ context.Context, e Edit) error {
	j.mu.Lock()
	j.entries = append(j.entries, e)
	j.mu.Unlock()

	j.log.Info("edit recorded",
		zap.String("edit_id", e.ID.String()),
		zap.String("row", e.Target.RowID),
		zap.String("column", string(e.Target.Column)),
		zap.String("old", e.Old),
		zap.String("new", e.New),
	)

	return nil
}

// Entries returns the recorded edits in commit order.
func (j *Journal) Entries() []Edit {
	j.mu.Lock()
	defer j.mu.Unlock()

	return slices.Clone(j.entries)
}
