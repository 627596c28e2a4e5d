package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/logging"
)

// Run is the main entry point. Returns exit code.
// A value on sigCh cancels the context handed to the command.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	globals := flag.NewFlagSet("dealgrid", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	store := globals.String("store", "", "Preference store: memory|file|sqlite|redis")
	storePath := globals.String("store-path", "", "Path of the file or sqlite store")
	dataset := globals.String("dataset", "", "JSON or YAML file of deals (default: bundled sample)")
	logLevel := globals.String("log-level", "", "Log level: debug|info|warn|error")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) < 2 {
		printUsage(out, globals, nil)
		return 0
	}

	if err := globals.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globals, nil)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *workDir,
		ConfigPath:      *configPath,
		Overrides: config.Overrides{
			Store:     *store,
			StorePath: *storePath,
			Dataset:   *dataset,
			LogLevel:  *logLevel,
		},
		Env: env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		return 1
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, errOut)
	if err != nil {
		fprintln(errOut, "error:", err)
		return 1
	}

	defer func() { _ = log.Sync() }()

	commands := allCommands(&cfg, log)

	rest := globals.Args()
	if *help || len(rest) == 0 {
		printUsage(out, globals, commands)
		return 0
	}

	name := rest[0]
	if name == "help" {
		printUsage(out, globals, commands)
		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() == name {
			log.Debug("running command", zap.String("command", name), zap.String("cwd", cfg.EffectiveCwd))

			return cmd.Run(ctx, NewIO(in, out, errOut), rest[1:])
		}
	}

	fprintln(errOut, "error: unknown command:", name)
	printUsage(errOut, globals, commands)

	return 1
}

func allCommands(cfg *config.Config, log *zap.Logger) []*Command {
	return []*Command{
		ViewCmd(cfg, log),
		LsCmd(cfg, log),
		ShowCmd(cfg, log),
		SortCmd(cfg, log),
		FilterCmd(cfg, log),
		ColumnsCmd(cfg, log),
		ExportCmd(cfg, log),
		PrintConfigCmd(cfg),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, `dealgrid - interactive deals grid

Usage: dealgrid [flags] <command> [args]

Global flags:`)

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	_, _ = fmt.Fprint(w, buf.String())

	if len(commands) == 0 {
		return
	}

	fprintln(w)
	fprintln(w, "Commands:")

	for _, group := range []string{groupBrowse, groupPrefs, groupOutput} {
		fprintln(w)
		fprintln(w, group+":")

		for _, cmd := range commands {
			if cmd.Group == group {
				fprintln(w, cmd.HelpLine())
			}
		}
	}

	fprintln(w)
	fprintln(w, "Run 'dealgrid <command> --help' for command flags and examples.")
}
