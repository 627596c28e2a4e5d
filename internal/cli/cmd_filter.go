package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
)

// FilterCmd returns the filter command.
func FilterCmd(cfg *config.Config, log *zap.Logger) *Command {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	addFilterFlags(fs)
	fs.Bool("clear", false, "Remove every filter before applying the others")

	return &Command{
		Flags: fs,
		Usage: "filter [flags]",
		Short: "Show or update the saved filters",
		Long: `Update the saved filters. Only the given flags change; the rest are kept.
An empty --status or --owner clears that filter. Without flags the current filters are printed.`,
		Group: groupPrefs,
		Examples: []string{
			"filter --status proposal,negotiation",
			"filter --from 2024-07-01 --to 2024-09-30",
			"filter --status= --no-amount",
			"filter --clear",
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrTooManyArgs, args)
			}

			return execFilter(ctx, io, cfg, log, fs)
		},
	}
}

func execFilter(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, fs *flag.FlagSet) error {
	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	if clearAll, _ := fs.GetBool("clear"); clearAll {
		s.engine.ClearFilters()
	}

	patch, err := filterPatch(fs, s.engine.Snapshot().Filters())
	if err != nil {
		return err
	}

	snap := s.engine.UpdateFilters(patch)

	io.Println("filters:", describeFilters(snap.Filters()))
	io.Printf("%d of %d deals match\n", len(s.engine.RowIDs()), len(s.engine.Records()))

	return nil
}
