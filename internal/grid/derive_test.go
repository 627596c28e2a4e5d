package grid_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

func ids(rows []deal.Deal) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].ID
	}

	return out
}

func Test_Derive_Returns_Collection_Order_When_No_Filters_Or_Sort(t *testing.T) {
	t.Parallel()

	got := ids(grid.Derive(deal.Sample(), grid.FilterConfig{}, nil))
	want := []string{"1", "2", "3", "4", "5", "6", "7", "8"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("derived ids mismatch (-want +got):\n%s", diff)
	}
}

func Test_Derive_Applies_Each_Predicate_When_Present(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters grid.FilterConfig
		want    []string
	}{
		{
			name:    "status won",
			filters: grid.FilterConfig{Status: []deal.Status{deal.StatusWon}},
			want:    []string{"5"},
		},
		{
			name:    "status set",
			filters: grid.FilterConfig{Status: []deal.Status{deal.StatusQualified, deal.StatusProposal}},
			want:    []string{"2", "3", "7", "8"},
		},
		{
			name:    "owner",
			filters: grid.FilterConfig{Owner: []string{"Mike Chen", "Lisa Wang"}},
			want:    []string{"2", "5"},
		},
		{
			name:    "search matches company case-insensitively",
			filters: grid.FilterConfig{Search: "RETAILMAX"},
			want:    []string{"5"},
		},
		{
			name:    "search matches owner",
			filters: grid.FilterConfig{Search: "chen"},
			want:    []string{"2"},
		},
		{
			name:    "search matches deal name",
			filters: grid.FilterConfig{Search: "platform"},
			want:    []string{"2", "7"},
		},
		{
			name:    "amount range inclusive",
			filters: grid.FilterConfig{AmountRange: &grid.AmountRange{Min: 50000, Max: 200000}},
			want:    []string{"1", "5", "6", "7"},
		},
		{
			name:    "amount range bounds are inclusive",
			filters: grid.FilterConfig{AmountRange: &grid.AmountRange{Min: 75000, Max: 125000}},
			want:    []string{"1", "5", "6"},
		},
		{
			name:    "date range both bounds",
			filters: grid.FilterConfig{DateRange: &grid.DateRange{Start: "2024-09-15", End: "2024-09-30"}},
			want:    []string{"1", "3", "8"},
		},
		{
			name:    "date range start only still excludes earlier",
			filters: grid.FilterConfig{DateRange: &grid.DateRange{Start: "2024-10-01"}},
			want:    []string{"2", "4", "7"},
		},
		{
			name:    "date range end only",
			filters: grid.FilterConfig{DateRange: &grid.DateRange{End: "2024-08-01"}},
			want:    []string{"5", "6"},
		},
		{
			name:    "unparseable bound is ignored",
			filters: grid.FilterConfig{DateRange: &grid.DateRange{Start: "soon", End: "2024-08-01"}},
			want:    []string{"5", "6"},
		},
		{
			name: "predicates compose with and",
			filters: grid.FilterConfig{
				Status:      []deal.Status{deal.StatusProposal},
				AmountRange: &grid.AmountRange{Min: 0, Max: 250000},
			},
			want: []string{"8"},
		},
		{
			name:    "nothing matches",
			filters: grid.FilterConfig{Search: "zzz"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(grid.Derive(deal.Sample(), tt.filters, nil))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("derived ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Derive_Matches_Predicate_Definition_When_Checked_Per_Record(t *testing.T) {
	t.Parallel()

	records := deal.Sample()
	filters := grid.FilterConfig{
		Search:      "o",
		Owner:       []string{"Sarah Johnson", "Emily Rodriguez", "James Wilson", "Rachel Green"},
		AmountRange: &grid.AmountRange{Min: 100000, Max: 250000},
	}

	derived := ids(grid.Derive(records, filters, nil))

	for _, r := range records {
		want := slices.Contains(filters.Owner, r.Owner) &&
			r.Amount >= 100000 && r.Amount <= 250000 &&
			(containsFold(r.DealName, "o") || containsFold(r.Company, "o") || containsFold(r.Owner, "o"))

		if got := slices.Contains(derived, r.ID); got != want {
			t.Errorf("record %s in view = %v, want %v", r.ID, got, want)
		}
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func Test_Derive_Orders_By_Amount_When_Sorted_Desc(t *testing.T) {
	t.Parallel()

	got := ids(grid.Derive(deal.Sample(), grid.FilterConfig{}, grid.SortConfig{{Key: deal.FieldAmount, Direction: grid.Desc}}))

	if got[0] != "3" || got[len(got)-1] != "4" {
		t.Fatalf("first/last = %s/%s, want 3/4 (all: %v)", got[0], got[len(got)-1], got)
	}

	want := []string{"3", "8", "7", "1", "6", "5", "2", "4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func Test_Derive_Keeps_Input_Order_When_Sort_Keys_Tie(t *testing.T) {
	t.Parallel()

	// Qualified: 2, 7. Proposal: 3, 8. Ties keep collection order.
	got := ids(grid.Derive(deal.Sample(), grid.FilterConfig{}, grid.SortConfig{{Key: deal.FieldStatus, Direction: grid.Asc}}))
	want := []string{"6", "1", "4", "3", "8", "2", "7", "5"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	// Same ties, descending primary key.
	got = ids(grid.Derive(deal.Sample(), grid.FilterConfig{}, grid.SortConfig{{Key: deal.FieldStatus, Direction: grid.Desc}}))
	want = []string{"5", "2", "7", "3", "8", "4", "1", "6"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func Test_Derive_Breaks_Ties_With_Secondary_Key_When_Multi_Sorted(t *testing.T) {
	t.Parallel()

	sort := grid.SortConfig{
		{Key: deal.FieldPriority, Direction: grid.Asc},
		{Key: deal.FieldAmount, Direction: grid.Desc},
	}

	got := ids(grid.Derive(deal.Sample(), grid.FilterConfig{}, sort))
	// Critical(3), High(8,1,6), Low(4), Medium(7,5,2)
	want := []string{"3", "8", "1", "6", "4", "7", "5", "2"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func Test_Derive_Does_Not_Modify_Input_When_Sorting(t *testing.T) {
	t.Parallel()

	records := deal.Sample()
	before := ids(records)

	_ = grid.Derive(records, grid.FilterConfig{}, grid.SortConfig{{Key: deal.FieldAmount, Direction: grid.Asc}})

	if diff := cmp.Diff(before, ids(records)); diff != "" {
		t.Fatalf("input reordered (-before +after):\n%s", diff)
	}
}

func Test_Summarize_Rounds_Average_When_Rows_Present(t *testing.T) {
	t.Parallel()

	agg := grid.Summarize(deal.Sample())

	want := grid.Aggregates{Count: 8, TotalAmount: 1035000, AvgProbability: 60}
	if diff := cmp.Diff(want, agg); diff != "" {
		t.Fatalf("aggregates mismatch (-want +got):\n%s", diff)
	}

	// 85 and 60 average to 72.5 which rounds half up.
	two := deal.Sample()[:2]
	if got := grid.Summarize(two).AvgProbability; got != 73 {
		t.Fatalf("avg probability = %d, want 73", got)
	}

	if got := grid.Summarize(nil); got != (grid.Aggregates{}) {
		t.Fatalf("empty aggregates = %+v, want zero", got)
	}
}

func Test_UniqueOwners_Returns_Sorted_Distinct_When_Called(t *testing.T) {
	t.Parallel()

	records := deal.Sample()
	records = append(records, records[0])

	got := grid.UniqueOwners(records)
	want := []string{
		"Alex Thompson", "David Kim", "Emily Rodriguez", "James Wilson",
		"Lisa Wang", "Mike Chen", "Rachel Green", "Sarah Johnson",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("owners mismatch (-want +got):\n%s", diff)
	}
}

func Test_ParseAmount_Coerces_To_Zero_When_Input_Not_Numeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"50000", 50000},
		{" 12.5 ", 12.5},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		if got := grid.ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
