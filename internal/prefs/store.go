// Package prefs persists grid view preferences (sort, filters and column
// layout) as a single JSON blob in a key-value backend.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

// DefaultKey is the key the blob is stored under unless configured otherwise.
const DefaultKey = "deals-table-state"

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 2 * time.Second

// KV is a string key-value backend. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store implements grid.Store over a KV. It never surfaces errors to the
// engine: failures are logged and treated as "no preferences".
type Store struct {
	kv      KV
	key     string
	log     *zap.Logger
	timeout time.Duration
}

var _ grid.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New returns a Store writing to kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     DefaultKey,
		log:     zap.NewNop(),
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Key returns the key the blob is stored under.
func (s *Store) Key() string { return s.key }

// Load reads and decodes the stored blob. ok is false when nothing usable
// was found. Fields that fail to decode are dropped individually.
func (s *Store) Load(ctx context.Context) (grid.PartialViewState, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("load preferences", zap.String("key", s.key), zap.Error(err))
		return grid.PartialViewState{}, false
	}

	if !ok {
		s.log.Debug("no stored preferences", zap.String("key", s.key))
		return grid.PartialViewState{}, false
	}

	partial, err := Decode([]byte(raw))
	if errors.Is(err, ErrMalformed) {
		s.log.Warn("stored preferences ignored", zap.String("key", s.key), zap.Error(err))
		return grid.PartialViewState{}, false
	}

	if err != nil {
		s.log.Warn("stored preferences partially recovered", zap.String("key", s.key), zap.Error(err))
	}

	found := partial.SortConfigs != nil || partial.Filters != nil || partial.Columns != nil

	return partial, found
}

// Save encodes state and writes it. Errors are logged.
func (s *Store) Save(state grid.ViewState) {
	data, err := Encode(state)
	if err != nil {
		s.log.Warn("encode preferences", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.log.Warn("save preferences", zap.String("key", s.key), zap.Error(err))
	}
}

// Encode serializes the persisted subset of a view state.
func Encode(state grid.ViewState) ([]byte, error) {
	if state.SortConfigs == nil {
		state.SortConfigs = grid.SortConfig{}
	}

	if state.Columns == nil {
		state.Columns = []deal.ColumnConfig{}
	}

	return json.Marshal(state)
}

// Decode parses a blob written by Encode. A blob that is not a JSON object
// yields ErrMalformed and nothing else. Otherwise every field that is
// present and valid is returned; the rest are reported as ErrFieldDropped.
func Decode(data []byte) (grid.PartialViewState, error) {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("not an object")
		}

		return grid.PartialViewState{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var (
		out  grid.PartialViewState
		errs []error
	)

	if raw, ok := present(fields, "sortConfigs"); ok {
		var sc grid.SortConfig

		err := json.Unmarshal(raw, &sc)
		if err == nil {
			err = sc.Validate()
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%w: sortConfigs: %w", ErrFieldDropped, err))
		} else {
			out.SortConfigs = &sc
		}
	}

	if raw, ok := present(fields, "filters"); ok {
		var fc grid.FilterConfig

		err := json.Unmarshal(raw, &fc)
		if err == nil {
			err = fc.Validate()
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%w: filters: %w", ErrFieldDropped, err))
		} else {
			out.Filters = &fc
		}
	}

	if raw, ok := present(fields, "columns"); ok {
		var cols []deal.ColumnConfig

		err := json.Unmarshal(raw, &cols)
		if err == nil {
			err = deal.ValidateColumns(cols)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%w: columns: %w", ErrFieldDropped, err))
		} else {
			out.Columns = cols
		}
	}

	return out, errors.Join(errs...)
}

// present returns the raw field value, treating JSON null as absent.
func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return nil, false
	}

	return raw, true
}
