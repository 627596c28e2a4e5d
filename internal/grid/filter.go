package grid

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// AmountRange is an inclusive amount interval.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultAmountRange is the range a filter editor starts from when the user
// touches only one bound.
var DefaultAmountRange = AmountRange{Min: 0, Max: 1_000_000}

// DateRange bounds closeDate inclusively. An empty bound is unbounded on that
// side; the other bound still applies.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// FilterConfig is a sparse set of predicates combined with AND. A zero field
// places no constraint.
type FilterConfig struct {
	Search      string        `json:"search,omitempty"`
	Status      []deal.Status `json:"status,omitempty"`
	Owner       []string      `json:"owner,omitempty"`
	AmountRange *AmountRange  `json:"amountRange,omitempty"`
	DateRange   *DateRange    `json:"dateRange,omitempty"`
}

// IsEmpty reports whether no predicate is present.
func (f FilterConfig) IsEmpty() bool {
	return f.Search == "" && len(f.Status) == 0 && len(f.Owner) == 0 &&
		f.AmountRange == nil && f.DateRange == nil
}

// Clone returns a deep copy.
func (f FilterConfig) Clone() FilterConfig {
	out := FilterConfig{
		Search: f.Search,
		Status: slices.Clone(f.Status),
		Owner:  slices.Clone(f.Owner),
	}

	if f.AmountRange != nil {
		r := *f.AmountRange
		out.AmountRange = &r
	}

	if f.DateRange != nil {
		r := *f.DateRange
		out.DateRange = &r
	}

	return out
}

// Validate rejects statuses outside the enum, non-finite amounts and date
// bounds that are not ISO dates.
func (f FilterConfig) Validate() error {
	for _, s := range f.Status {
		if !s.Valid() {
			return fmt.Errorf("%w: %q", deal.ErrInvalidStatus, s)
		}
	}

	if r := f.AmountRange; r != nil {
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
			return fmt.Errorf("%w: amount %v..%v", ErrInvalidRange, r.Min, r.Max)
		}
	}

	if r := f.DateRange; r != nil {
		for _, bound := range []string{r.Start, r.End} {
			if bound == "" {
				continue
			}

			if _, err := time.Parse(deal.DateLayout, bound); err != nil {
				return fmt.Errorf("%w: date %q", ErrInvalidRange, bound)
			}
		}
	}

	return nil
}

// matches evaluates every present predicate against d, cheapest first.
func (f *FilterConfig) matches(d *deal.Deal, q *compiledFilter) bool {
	if len(f.Status) > 0 && !slices.Contains(f.Status, d.Status) {
		return false
	}

	if len(f.Owner) > 0 && !slices.Contains(f.Owner, d.Owner) {
		return false
	}

	if r := f.AmountRange; r != nil && (d.Amount < r.Min || d.Amount > r.Max) {
		return false
	}

	if q.search != "" &&
		!strings.Contains(strings.ToLower(d.DealName), q.search) &&
		!strings.Contains(strings.ToLower(d.Company), q.search) &&
		!strings.Contains(strings.ToLower(d.Owner), q.search) {
		return false
	}

	if q.hasDates {
		closed, err := time.Parse(deal.DateLayout, d.CloseDate)
		if err != nil {
			return false
		}

		if q.hasStart && closed.Before(q.start) {
			return false
		}

		if q.hasEnd && closed.After(q.end) {
			return false
		}
	}

	return true
}

// compiledFilter holds per-derivation precomputed predicate inputs.
type compiledFilter struct {
	search   string
	hasDates bool
	hasStart bool
	hasEnd   bool
	start    time.Time
	end      time.Time
}

func compile(f *FilterConfig) compiledFilter {
	q := compiledFilter{search: strings.ToLower(f.Search)}

	if r := f.DateRange; r != nil {
		if t, err := time.Parse(deal.DateLayout, r.Start); err == nil {
			q.start, q.hasStart = t, true
		}

		if t, err := time.Parse(deal.DateLayout, r.End); err == nil {
			q.end, q.hasEnd = t, true
		}

		q.hasDates = q.hasStart || q.hasEnd
	}

	return q
}

// FilterPatch is a sparse update to a FilterConfig. Only fields set through
// the With* methods are applied; setting a zero value clears that field.
type FilterPatch struct {
	set    patchFields
	values FilterConfig
}

type patchFields uint8

const (
	patchSearch patchFields = 1 << iota
	patchStatus
	patchOwner
	patchAmount
	patchDate
)

// Patch starts an empty FilterPatch.
func Patch() FilterPatch { return FilterPatch{} }

// WithSearch sets the free-text search. "" clears it.
func (p FilterPatch) WithSearch(s string) FilterPatch {
	p.set |= patchSearch
	p.values.Search = s

	return p
}

// WithStatus sets the allowed statuses. No arguments clears the predicate.
func (p FilterPatch) WithStatus(statuses ...deal.Status) FilterPatch {
	p.set |= patchStatus
	p.values.Status = slices.Clone(statuses)

	return p
}

// WithOwner sets the allowed owners. No arguments clears the predicate.
func (p FilterPatch) WithOwner(owners ...string) FilterPatch {
	p.set |= patchOwner
	p.values.Owner = slices.Clone(owners)

	return p
}

// WithAmountRange sets the amount range. nil clears it.
func (p FilterPatch) WithAmountRange(r *AmountRange) FilterPatch {
	p.set |= patchAmount
	p.values.AmountRange = nil

	if r != nil {
		c := *r
		p.values.AmountRange = &c
	}

	return p
}

// WithDateRange sets the closeDate range. nil, or a range with both bounds
// empty, clears it.
func (p FilterPatch) WithDateRange(r *DateRange) FilterPatch {
	p.set |= patchDate
	p.values.DateRange = nil

	if r != nil && (r.Start != "" || r.End != "") {
		c := *r
		p.values.DateRange = &c
	}

	return p
}

// IsEmpty reports whether the patch touches no field.
func (p FilterPatch) IsEmpty() bool { return p.set == 0 }

// apply shallow-merges p into f and returns the result.
func (p FilterPatch) apply(f FilterConfig) FilterConfig {
	out := f.Clone()
	v := p.values.Clone()

	if p.set&patchSearch != 0 {
		out.Search = v.Search
	}

	if p.set&patchStatus != 0 {
		out.Status = v.Status
	}

	if p.set&patchOwner != 0 {
		out.Owner = v.Owner
	}

	if p.set&patchAmount != 0 {
		out.AmountRange = v.AmountRange
	}

	if p.set&patchDate != 0 {
		out.DateRange = v.DateRange
	}

	return out
}

// ParseAmount converts range-filter input to a number. Input that is not a
// finite number is coerced to 0 rather than rejected.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
