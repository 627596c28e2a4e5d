package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/export"
)

// ExportCmd returns the export command.
func ExportCmd(cfg *config.Config, log *zap.Logger) *Command {
	return &Command{
		Flags: flag.NewFlagSet("export", flag.ContinueOnError),
		Usage: "export <file.xlsx>",
		Short: "Export the saved view to a spreadsheet",
		Long:  "Write the filtered and sorted deals, with the visible columns in layout order, to an xlsx workbook.",
		Group: groupOutput,
		Examples: []string{
			"export deals.xlsx",
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			switch {
			case len(args) == 0:
				return fmt.Errorf("%w: output file", ErrArgRequired)
			case len(args) > 1:
				return fmt.Errorf("%w: %v", ErrTooManyArgs, args[1:])
			}

			return execExport(ctx, io, cfg, log, args[0])
		},
	}
}

func execExport(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.EffectiveCwd, path)
	}

	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	rows := s.engine.Rows()

	var buf bytes.Buffer

	if err := export.WriteXLSX(&buf, rows, s.engine.Columns()); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if len(rows) == 0 {
		io.Warn("exported an empty view", "run 'dealgrid filter --clear' to include every deal")
	}

	io.Printf("exported %d rows to %s\n", len(rows), path)

	return nil
}
