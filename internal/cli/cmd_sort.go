package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

// SortCmd returns the sort command.
func SortCmd(cfg *config.Config, log *zap.Logger) *Command {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	fs.Bool("clear", false, "Remove every sort key")

	return &Command{
		Flags: fs,
		Usage: "sort [key[:dir]...]",
		Short: "Show or set the saved sort",
		Long: `Set the saved sort. The first key is the primary key; later keys break ties.
Direction defaults to asc. Without arguments the current sort is printed.`,
		Group: groupPrefs,
		Examples: []string{
			"sort amount:desc owner",
			"sort --clear",
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execSort(ctx, io, cfg, log, fs, args)
		},
	}
}

func execSort(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, fs *flag.FlagSet, args []string) error {
	clearAll, _ := fs.GetBool("clear")
	if clearAll && len(args) > 0 {
		return fmt.Errorf("%w: --clear with sort keys", ErrConflictingFlags)
	}

	keys := make([]grid.SortKey, 0, len(args))

	for _, arg := range args {
		k, err := parseSortArg(arg)
		if err != nil {
			return err
		}

		keys = append(keys, k)
	}

	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	if clearAll {
		s.engine.ClearSort()
	}

	applySort(s.engine, keys)

	io.Println("sort:", describeSort(s.engine.Snapshot().SortConfigs()))

	return nil
}
