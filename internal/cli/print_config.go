package cli

import (
	"context"
	"encoding/json"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/dealgrid/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)
	fs.Bool("json", false, "Print the resolved configuration as JSON")

	return &Command{
		Flags: fs,
		Usage: "print-config [--json]",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration, resolved paths and the files it was loaded from.",
		Group: groupOutput,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			if asJSON, _ := fs.GetBool("json"); asJSON {
				return printConfigJSON(io, cfg)
			}

			printConfig(io, cfg)

			return nil
		},
	}
}

func printConfig(io *IO, cfg *config.Config) {
	dataset := cfg.DatasetAbs
	if dataset == "" {
		dataset = "(sample)"
	}

	pairs := [][2]string{
		{"effective_cwd", cfg.EffectiveCwd},
		{"store", cfg.Store},
		{"store_path", cfg.StorePathAbs},
		{"redis_addr", cfg.RedisAddr},
		{"redis_prefix", cfg.RedisPrefix},
		{"state_key", cfg.StateKey},
		{"dataset", dataset},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
	}

	for _, p := range pairs {
		if p[1] == "" {
			continue
		}

		io.Printf("%s=%s\n", p[0], p[1])
	}

	io.Println()
	io.Println("# sources")

	sources := [][2]string{
		{"global_config", cfg.Sources.Global},
		{"project_config", cfg.Sources.Project},
	}

	printed := false

	for _, p := range sources {
		if p[1] != "" {
			io.Printf("%s=%s\n", p[0], p[1])
			printed = true
		}
	}

	if !printed {
		io.Println("(defaults only)")
	}
}

// printConfigJSON prints the file-level fields plus the resolved paths.
func printConfigJSON(io *IO, cfg *config.Config) error {
	out := struct {
		config.Config
		EffectiveCwd string         `json:"effective_cwd"`
		StorePathAbs string         `json:"store_path_abs,omitempty"`
		DatasetAbs   string         `json:"dataset_abs,omitempty"`
		Sources      config.Sources `json:"sources"`
	}{*cfg, cfg.EffectiveCwd, cfg.StorePathAbs, cfg.DatasetAbs, cfg.Sources}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	io.Println(string(data))

	return nil
}
