package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/dealgrid/internal/cli"
)

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--invalid-flag", "ls")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")

	// Should show valid global flags
	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--cwd")
	cli.AssertContains(t, stderr, "--config")
	cli.AssertContains(t, stderr, "--store")
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Help_Lists_Commands_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--help")

	for _, name := range []string{"view", "ls", "show", "sort", "filter", "columns", "export", "print-config"} {
		cli.AssertContains(t, stdout, "  "+name)
	}
}

func Test_Command_Help_Shows_Flags_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("ls", "--help")

	cli.AssertContains(t, stdout, "Usage: dealgrid ls [flags]")
	cli.AssertContains(t, stdout, "--sort")
	cli.AssertContains(t, stdout, "--save")
}

func Test_Invalid_Command_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("ls", "--bogus")

	cli.AssertContains(t, stderr, "error: unknown flag: --bogus")
	cli.AssertContains(t, stderr, "Usage: dealgrid ls [flags]")
}

func Test_Invalid_Config_Is_Fatal_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteConfig(`{"store": "etcd"}`)

	stderr := c.MustFail("ls")
	cli.AssertContains(t, stderr, "invalid store backend")
}

func Test_Help_Groups_Commands_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("help")

	browse := strings.Index(stdout, "Browse:")
	saved := strings.Index(stdout, "Saved view:")
	output := strings.Index(stdout, "Output:")

	if browse < 0 || saved < browse || output < saved {
		t.Fatalf("groups out of order: browse=%d saved=%d output=%d\n%s", browse, saved, output, stdout)
	}

	if sortAt := strings.Index(stdout, "  sort "); sortAt < saved || sortAt > output {
		t.Errorf("sort should be listed under Saved view\n%s", stdout)
	}
}

func Test_Command_Help_Shows_Examples_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("columns", "-h")

	cli.AssertContains(t, stdout, "Examples:")
	cli.AssertContains(t, stdout, "  dealgrid columns --reset")
}

func Test_Command_Flag_Error_Keeps_Stdout_Empty_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("sort", "--nope")

	if got, want := code, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "Usage: dealgrid sort")
}
