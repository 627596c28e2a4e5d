package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Help groups, in the order the global usage lists them.
const (
	groupBrowse = "Browse"
	groupPrefs  = "Saved view"
	groupOutput = "Output"
)

// Command is one dealgrid subcommand.
type Command struct {
	// Flags holds the command's own flags. Its name is unused.
	Flags *flag.FlagSet

	// Usage is the command name followed by its arguments, e.g. "show <id>".
	Usage string

	// Short is the line shown in the global command list.
	Short string

	// Long is shown by "dealgrid <cmd> --help". Short is used when empty.
	Long string

	// Group places the command under a heading in the global help.
	Group string

	// Examples are printed verbatim below the flags, prefixed with "dealgrid ".
	Examples []string

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine is the command's entry in the global usage.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp writes the full command help to w.
func (c *Command) PrintHelp(w io.Writer) {
	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	_, _ = fmt.Fprintf(w, "Usage: dealgrid %s\n\n%s\n", c.Usage, desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		_, _ = fmt.Fprint(w, "\nFlags:\n", c.Flags.FlagUsages())
	}

	if len(c.Examples) > 0 {
		_, _ = fmt.Fprint(w, "\nExamples:\n")

		for _, ex := range c.Examples {
			_, _ = fmt.Fprintf(w, "  dealgrid %s\n", ex)
		}
	}
}

// Run parses args and executes the command, returning the exit code. --help
// prints to stdout; a flag error prints the help to stderr.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(io.Discard)

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o.out)
			return 0
		}

		code := o.Fail(err)
		o.ErrPrintln()
		c.PrintHelp(o.errOut)

		return code
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		return o.Fail(err)
	}

	return o.Finish()
}
