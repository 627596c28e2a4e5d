package grid

import (
	"fmt"
	"slices"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// Direction is a sort direction.
type Direction string

// Direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is Asc or Desc.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// ParseDirection accepts "asc"/"desc".
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}

	return d, nil
}

// SortKey is one entry of a SortConfig.
type SortKey struct {
	Key       deal.Field `json:"key"`
	Direction Direction  `json:"direction"`
}

// SortConfig is an ordered list of sort keys; the first entry is the primary
// key. Keys are unique within a SortConfig.
type SortConfig []SortKey

// Index returns the position of key, or -1.
func (s SortConfig) Index(key deal.Field) int {
	return slices.IndexFunc(s, func(k SortKey) bool { return k.Key == key })
}

// Clone returns an independent copy. A nil config clones to nil.
func (s SortConfig) Clone() SortConfig {
	return slices.Clone(s)
}

// Validate rejects unknown or unsortable keys, bad directions and duplicates.
func (s SortConfig) Validate() error {
	seen := make(map[deal.Field]struct{}, len(s))

	for _, k := range s {
		if !k.Key.Valid() {
			return fmt.Errorf("%w: %q", deal.ErrUnknownField, k.Key)
		}

		if !k.Key.Sortable() {
			return fmt.Errorf("%w: %s", deal.ErrFieldNotSortable, k.Key)
		}

		if !k.Direction.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidDirection, k.Direction)
		}

		if _, dup := seen[k.Key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSortKey, k.Key)
		}

		seen[k.Key] = struct{}{}
	}

	return nil
}

// toggled applies the click cycle unsorted -> asc -> desc -> unsorted to key.
// In single mode the result never holds any other key; in multi mode other
// entries keep their positions.
func (s SortConfig) toggled(key deal.Field, multi bool) SortConfig {
	idx := s.Index(key)

	if !multi {
		switch {
		case idx < 0:
			return SortConfig{{Key: key, Direction: Asc}}
		case s[idx].Direction == Asc:
			return SortConfig{{Key: key, Direction: Desc}}
		default:
			return SortConfig{}
		}
	}

	out := s.Clone()

	switch {
	case idx < 0:
		return append(out, SortKey{Key: key, Direction: Asc})
	case out[idx].Direction == Asc:
		out[idx].Direction = Desc
		return out
	default:
		return slices.Delete(out, idx, idx+1)
	}
}

// withSort sets key to dir. Additive mode moves key to the lowest priority
// and keeps the rest.
func (s SortConfig) withSort(key deal.Field, dir Direction, additive bool) SortConfig {
	if !additive {
		return SortConfig{{Key: key, Direction: dir}}
	}

	out := slices.DeleteFunc(s.Clone(), func(k SortKey) bool { return k.Key == key })

	return append(out, SortKey{Key: key, Direction: dir})
}

// compare orders a and b by the keys of s in priority order. Ties across all
// keys return 0 so a stable sort keeps input order.
func (s SortConfig) compare(a, b *deal.Deal) int {
	for _, k := range s {
		c := k.Key.Get(a).Compare(k.Key.Get(b))
		if c == 0 {
			continue
		}

		if k.Direction == Desc {
			return -c
		}

		return c
	}

	return 0
}
