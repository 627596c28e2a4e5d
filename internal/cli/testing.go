package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI runs dealgrid in-process against a private working directory. HOME
// points at an empty temp dir so no global config leaks into a test.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string

	// Globals are inserted before every command, e.g. "--store", "memory".
	Globals []string
}

// NewCLI returns a CLI over fresh temp directories.
func NewCLI(t *testing.T, globals ...string) *CLI {
	t.Helper()

	return &CLI{
		t:       t,
		Dir:     t.TempDir(),
		Env:     map[string]string{"HOME": t.TempDir()},
		Globals: globals,
	}
}

// Run executes one invocation and returns stdout, stderr and the exit code.
// "dealgrid --cwd Dir" and Globals are prepended to args.
func (c *CLI) Run(args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer

	argv := append([]string{"dealgrid", "--cwd", c.Dir}, c.Globals...)
	argv = append(argv, args...)

	code := Run(strings.NewReader(""), &stdout, &stderr, argv, c.Env, nil)

	return stdout.String(), stderr.String(), code
}

// MustRun fails the test unless the invocation exits 0. Returns trimmed stdout.
func (c *CLI) MustRun(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("dealgrid %v: exit %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail fails the test unless the invocation exits non-zero with nothing
// on stdout. Returns trimmed stderr.
func (c *CLI) MustFail(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code == 0 {
		c.t.Fatalf("dealgrid %v: expected failure\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		c.t.Fatalf("dealgrid %v: failed but wrote stdout\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// IDs runs "ls --ids" with extra args and returns the listed deal ids.
func (c *CLI) IDs(args ...string) []string {
	c.t.Helper()

	out := c.MustRun(append([]string{"ls", "--ids"}, args...)...)
	if out == "" {
		return nil
	}

	return strings.Split(out, "\n")
}

// StatePath is where the default file store keeps the saved view.
func (c *CLI) StatePath() string {
	return filepath.Join(c.Dir, ".dealgrid", "state.json")
}

// WriteConfig writes the project config file.
func (c *CLI) WriteConfig(content string) {
	c.t.Helper()
	c.WriteFile(".dealgrid.json", content)
}

// WriteFile writes content to a path relative to Dir.
func (c *CLI) WriteFile(rel, content string) {
	c.t.Helper()

	path := filepath.Join(c.Dir, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		c.t.Fatalf("mkdir for %s: %v", rel, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		c.t.Fatalf("write %s: %v", rel, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("missing %q in:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("unexpected %q in:\n%s", substr, content)
	}
}

// AssertIDs fails the test unless got lists exactly want, in order.
func AssertIDs(t *testing.T, got []string, want ...string) {
	t.Helper()

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ids=%v, want=%v", got, want)
	}
}
