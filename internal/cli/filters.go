package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

// addFilterFlags registers the flags shared by ls and filter.
func addFilterFlags(fs *flag.FlagSet) {
	fs.String("search", "", "Case-insensitive match on deal name, company or owner")
	fs.StringSlice("status", nil, "Only these statuses (comma separated, empty clears)")
	fs.StringSlice("owner", nil, "Only these owners (comma separated, empty clears)")
	fs.String("min", "", "Minimum amount (non-numeric input counts as 0)")
	fs.String("max", "", "Maximum amount (non-numeric input counts as 0)")
	fs.String("from", "", "Earliest close date (YYYY-MM-DD)")
	fs.String("to", "", "Latest close date (YYYY-MM-DD)")
	fs.Bool("no-amount", false, "Remove the amount range")
	fs.Bool("no-date", false, "Remove the close date range")
}

// filterPatch builds a patch from the filter flags that were given. A range
// bound that was not given keeps its current value.
func filterPatch(fs *flag.FlagSet, current grid.FilterConfig) (grid.FilterPatch, error) {
	p := grid.Patch()

	if fs.Changed("search") {
		s, _ := fs.GetString("search")
		p = p.WithSearch(s)
	}

	if fs.Changed("status") {
		vals, _ := fs.GetStringSlice("status")

		statuses := make([]deal.Status, 0, len(vals))

		for _, v := range vals {
			st, err := parseStatus(v)
			if err != nil {
				return grid.FilterPatch{}, err
			}

			statuses = append(statuses, st)
		}

		p = p.WithStatus(statuses...)
	}

	if fs.Changed("owner") {
		owners, _ := fs.GetStringSlice("owner")
		p = p.WithOwner(owners...)
	}

	noAmount, _ := fs.GetBool("no-amount")
	amountGiven := fs.Changed("min") || fs.Changed("max")

	switch {
	case noAmount && amountGiven:
		return grid.FilterPatch{}, fmt.Errorf("%w: --no-amount with --min/--max", ErrConflictingFlags)
	case noAmount:
		p = p.WithAmountRange(nil)
	case amountGiven:
		r := grid.DefaultAmountRange
		if current.AmountRange != nil {
			r = *current.AmountRange
		}

		if fs.Changed("min") {
			s, _ := fs.GetString("min")
			r.Min = grid.ParseAmount(s)
		}

		if fs.Changed("max") {
			s, _ := fs.GetString("max")
			r.Max = grid.ParseAmount(s)
		}

		p = p.WithAmountRange(&r)
	}

	noDate, _ := fs.GetBool("no-date")
	dateGiven := fs.Changed("from") || fs.Changed("to")

	switch {
	case noDate && dateGiven:
		return grid.FilterPatch{}, fmt.Errorf("%w: --no-date with --from/--to", ErrConflictingFlags)
	case noDate:
		p = p.WithDateRange(nil)
	case dateGiven:
		var r grid.DateRange
		if current.DateRange != nil {
			r = *current.DateRange
		}

		for _, b := range []struct {
			name string
			dst  *string
		}{{"from", &r.Start}, {"to", &r.End}} {
			if !fs.Changed(b.name) {
				continue
			}

			s, _ := fs.GetString(b.name)
			if s != "" {
				if _, err := time.Parse(deal.DateLayout, s); err != nil {
					return grid.FilterPatch{}, fmt.Errorf("--%s: %w", b.name, err)
				}
			}

			*b.dst = s
		}

		p = p.WithDateRange(&r)
	}

	return p, nil
}

func parseStatus(s string) (deal.Status, error) {
	for _, st := range deal.StatusOptions {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: %q (want one of %v)", ErrInvalidStatus, s, deal.StatusOptions)
}

// describeFilters renders the active predicates on one line.
func describeFilters(f grid.FilterConfig) string {
	if f.IsEmpty() {
		return "(none)"
	}

	var parts []string

	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}

	if len(f.Status) > 0 {
		names := make([]string, len(f.Status))
		for i, s := range f.Status {
			names[i] = string(s)
		}

		parts = append(parts, "status="+strings.Join(names, ","))
	}

	if len(f.Owner) > 0 {
		parts = append(parts, "owner="+strings.Join(f.Owner, ","))
	}

	if r := f.AmountRange; r != nil {
		parts = append(parts, "amount="+strconv.FormatFloat(r.Min, 'f', -1, 64)+".."+strconv.FormatFloat(r.Max, 'f', -1, 64))
	}

	if r := f.DateRange; r != nil {
		parts = append(parts, fmt.Sprintf("close=%s..%s", r.Start, r.End))
	}

	return strings.Join(parts, " ")
}

// parseSortArg parses "key" or "key:dir".
func parseSortArg(arg string) (grid.SortKey, error) {
	name, dir, hasDir := strings.Cut(arg, ":")

	key, err := deal.ParseField(name)
	if err != nil {
		return grid.SortKey{}, fmt.Errorf("%w: %w", ErrInvalidSort, err)
	}

	if !key.Sortable() {
		return grid.SortKey{}, fmt.Errorf("%w: %s is not sortable", ErrInvalidSort, key)
	}

	d := grid.Asc
	if hasDir {
		d, err = grid.ParseDirection(strings.ToLower(dir))
		if err != nil {
			return grid.SortKey{}, fmt.Errorf("%w: %w", ErrInvalidSort, err)
		}
	}

	return grid.SortKey{Key: key, Direction: d}, nil
}

// applySort replaces the engine's sort with keys, in priority order.
func applySort(e *grid.Engine, keys []grid.SortKey) {
	for i, k := range keys {
		e.SetSort(k.Key, k.Direction, i > 0)
	}
}

func describeSort(s grid.SortConfig) string {
	if len(s) == 0 {
		return "(none)"
	}

	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = string(k.Key) + ":" + string(k.Direction)
	}

	return strings.Join(parts, " ")
}
