package grid

import (
	"slices"

	"github.com/calvinalkan/dealgrid/internal/deal"
)

// Derive returns the records that satisfy filters, ordered by sort. It is a
// pure function of its inputs and never modifies records. With an empty sort
// the filtered records keep collection order; ties under a non-empty sort
// also keep collection order.
func Derive(records []deal.Deal, filters FilterConfig, sort SortConfig) []deal.Deal {
	q := compile(&filters)
	out := make([]deal.Deal, 0, len(records))

	for i := range records {
		if filters.matches(&records[i], &q) {
			out = append(out, records[i])
		}
	}

	if len(sort) > 0 {
		slices.SortStableFunc(out, func(a, b deal.Deal) int {
			return sort.compare(&a, &b)
		})
	}

	return out
}

// Aggregates summarizes a derived view for the totals bar.
type Aggregates struct {
	Count int
	// TotalAmount is the sum of Amount over the view.
	TotalAmount float64
	// AvgProbability is the mean Probability rounded to the nearest integer,
	// 0 for an empty view.
	AvgProbability int
}

// Summarize computes Aggregates over rows.
func Summarize(rows []deal.Deal) Aggregates {
	agg := Aggregates{Count: len(rows)}
	if len(rows) == 0 {
		return agg
	}

	var probSum int

	for i := range rows {
		agg.TotalAmount += rows[i].Amount
		probSum += rows[i].Probability
	}

	// Half-up rounding on non-negative values.
	agg.AvgProbability = (2*probSum + len(rows)) / (2 * len(rows))

	return agg
}

// UniqueOwners returns the distinct owners of records, sorted.
func UniqueOwners(records []deal.Deal) []string {
	owners := make([]string, 0, len(records))
	for i := range records {
		owners = append(owners, records[i].Owner)
	}

	slices.Sort(owners)

	return slices.Compact(owners)
}
