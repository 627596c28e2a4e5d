package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/grid"
)

// LsCmd returns the ls command.
func LsCmd(cfg *config.Config, log *zap.Logger) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.StringArray("sort", nil, "Sort by `key[:asc|desc]` (repeat for secondary keys)")
	addFilterFlags(fs)
	fs.Bool("save", false, "Persist the given sort and filters as the saved view")
	fs.Bool("ids", false, "Print only deal ids, one per line")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List deals in the saved view",
		Long: `List deals using the saved sort, filters and column layout.
Sort and filter flags refine the saved view for this listing only, unless --save is given.`,
		Group: groupBrowse,
		Examples: []string{
			"ls",
			"ls --status won,lost --sort amount:desc",
			"ls --min 50000 --max 200000 --ids",
			`ls --owner "Mike Chen" --save`,
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrTooManyArgs, args)
			}

			return execLs(ctx, io, cfg, log, fs)
		},
	}
}

func execLs(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, fs *flag.FlagSet) error {
	sortArgs, _ := fs.GetStringArray("sort")

	keys := make([]grid.SortKey, 0, len(sortArgs))

	for _, arg := range sortArgs {
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

	patch, err := filterPatch(fs, s.engine.Snapshot().Filters())
	if err != nil {
		return err
	}

	engine := s.engine

	if save, _ := fs.GetBool("save"); !save && (len(keys) > 0 || !patch.IsEmpty()) {
		engine, err = s.scratch(ctx)
		if err != nil {
			return err
		}
	}

	applySort(engine, keys)
	engine.UpdateFilters(patch)

	if idsOnly, _ := fs.GetBool("ids"); idsOnly {
		for _, id := range engine.RowIDs() {
			io.Println(id)
		}

		return nil
	}

	printTable(io, engine)

	return nil
}
