package cli

import (
	"fmt"
	"io"
	"slices"
)

// IO is the output side of one command run. Warnings are collected while
// the command runs and written to stderr around its stdout output.
type IO struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	warnings []string
	// headerDone is set once pending warnings were written ahead of stdout.
	headerDone bool
}

// NewIO returns an IO over the given streams.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{in: in, out: out, errOut: errOut}
}

// Warn records a non-fatal problem and what the user can do about it.
// Repeated warnings are recorded once. Any warning makes the exit code 1
// while stdout output still happens.
//
// Warnings are written before the first stdout line and again at the end,
// so they show up whether the output is piped through head or tail.
func (o *IO) Warn(issue, action string) {
	w := issue + ": " + action
	if !slices.Contains(o.warnings, w) {
		o.warnings = append(o.warnings, w)
	}
}

func (o *IO) Println(a ...any) {
	o.writeWarningsOnce()
	_, _ = fmt.Fprintln(o.out, a...)
}

func (o *IO) Printf(format string, a ...any) {
	o.writeWarningsOnce()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Fail reports err on stderr and returns the failure exit code. Warnings
// collected so far are dropped; the error supersedes them.
func (o *IO) Fail(err error) int {
	o.ErrPrintln("error:", err)
	return 1
}

// Finish writes the trailing warnings and returns the exit code.
func (o *IO) Finish() int {
	o.writeWarningsOnce()

	if len(o.warnings) == 0 {
		return 0
	}

	o.writeWarnings()

	return 1
}

func (o *IO) writeWarningsOnce() {
	if o.headerDone || len(o.warnings) == 0 {
		return
	}

	o.headerDone = true
	o.writeWarnings()
}

func (o *IO) writeWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
