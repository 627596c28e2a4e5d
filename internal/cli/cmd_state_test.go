package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/dealgrid/internal/cli"
)

// Tests for the commands that change the saved view: sort, filter, columns.

func Test_Sort_Persists_Keys_In_Priority_Order_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("sort", "amount:desc", "owner"), "sort: amount:desc owner:asc"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.MustRun("sort"), "sort: amount:desc owner:asc"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertIDs(t, c.IDs(), "3", "8", "7", "1", "6", "5", "2", "4")

	if got, want := c.MustRun("sort", "--clear"), "sort: (none)"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertIDs(t, c.IDs(), "1", "2", "3", "4", "5", "6", "7", "8")
}

func Test_Sort_Rejects_Clear_With_Keys_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("sort", "--clear", "amount")

	cli.AssertContains(t, stderr, "conflicting flags")
}

func Test_Filter_Merges_Fields_Shallowly_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("filter", "--status", "won,lost")
	cli.AssertContains(t, stdout, "filters: status=Won,Lost")
	cli.AssertContains(t, stdout, "2 of 8 deals match")

	stdout = c.MustRun("filter", "--search", "tech")
	cli.AssertContains(t, stdout, `filters: search="tech" status=Won,Lost`)
	cli.AssertContains(t, stdout, "0 of 8 deals match")

	cli.AssertContains(t, c.MustRun("ls"), "No results. Try adjusting filters.")

	stdout = c.MustRun("filter", "--status=")
	cli.AssertContains(t, stdout, `filters: search="tech"`)
	cli.AssertContains(t, stdout, "2 of 8 deals match")

	stdout = c.MustRun("filter", "--clear")
	cli.AssertContains(t, stdout, "filters: (none)")
	cli.AssertContains(t, stdout, "8 of 8 deals match")
}

func Test_Filter_Keeps_Other_Bound_When_One_Amount_Bound_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	cli.AssertContains(t, c.MustRun("filter", "--min", "100000"), "amount=100000..1000000")
	cli.AssertContains(t, c.MustRun("filter", "--max", "200000"), "amount=100000..200000")

	cli.AssertIDs(t, c.IDs(), "1", "7")

	cli.AssertContains(t, c.MustRun("filter", "--no-amount"), "filters: (none)")
}

func Test_Filter_Rejects_Unknown_Status_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("filter", "--status", "Pending")

	cli.AssertContains(t, stderr, "invalid status")
}

func columnRow(t *testing.T, out, key string) []string {
	t.Helper()

	for line := range strings.SplitSeq(out, "\n") {
		f := strings.Fields(line)
		if len(f) >= 2 && f[1] == key {
			return f
		}
	}

	t.Fatalf("no row for %s in:\n%s", key, out)

	return nil
}

func Test_Columns_Hides_Moves_And_Resizes_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("columns", "--hide", "company", "--move", "owner=1", "--width", "amount=150")

	owner := columnRow(t, stdout, "owner")
	if got, want := owner[0], "1"; got != want {
		t.Errorf("owner position=%s, want=%s", got, want)
	}

	company := columnRow(t, stdout, "company")
	if got, want := company[len(company)-1], "hidden"; got != want {
		t.Errorf("company=%s, want=%s", got, want)
	}

	amount := columnRow(t, stdout, "amount")
	if got, want := strings.Join(amount, " "), "6 amount Amount 150 visible"; got != want {
		t.Errorf("amount row=%q, want=%q", got, want)
	}

	header := strings.SplitN(c.MustRun("ls"), "\n", 2)[0]
	cli.AssertNotContains(t, header, "Company")

	if !strings.HasPrefix(header, "Owner") {
		t.Errorf("header should start with Owner: %q", header)
	}
}

func Test_Columns_Clamps_Width_To_Minimum_When_Too_Narrow(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	amount := columnRow(t, c.MustRun("columns", "--width", "amount=10"), "amount")

	if got, want := amount[3], "80"; got != want {
		t.Errorf("width=%s, want=%s", got, want)
	}
}

func Test_Columns_Warns_When_Visibility_Unchanged(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("columns", "--hide", "source")

	if got, want := code, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "source")
	cli.AssertContains(t, stderr, "warning: column source unchanged: it is already hidden")
}

func Test_Columns_Reset_Restores_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("columns", "--hide", "company", "--width", "amount=300")

	stdout := c.MustRun("columns", "--reset")

	if got, want := columnRow(t, stdout, "amount")[3], "120"; got != want {
		t.Errorf("width=%s, want=%s", got, want)
	}

	company := columnRow(t, stdout, "company")
	if got, want := company[len(company)-1], "visible"; got != want {
		t.Errorf("company=%s, want=%s", got, want)
	}
}

func Test_Columns_Rejects_Invalid_Flags_When_Invoked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"--hide", "color"}, "invalid column"},
		{"move out of range", []string{"--move", "owner=99"}, "invalid move"},
		{"width without value", []string{"--width", "amount"}, "invalid width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stderr := c.MustFail(append([]string{"columns"}, tt.args...)...)
			cli.AssertContains(t, stderr, tt.want)
		})
	}
}
