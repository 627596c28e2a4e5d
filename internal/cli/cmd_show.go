package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/view"
)

// ShowCmd returns the show command.
func ShowCmd(cfg *config.Config, log *zap.Logger) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show a deal with its recent activity",
		Long:  "Print every column of a deal followed by its expanded detail: tags, source, notes and the most recent activities.",
		Group: groupBrowse,
		Examples: []string{
			"show 5",
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			switch {
			case len(args) == 0:
				return fmt.Errorf("%w: deal id", ErrArgRequired)
			case len(args) > 1:
				return fmt.Errorf("%w: %v", ErrTooManyArgs, args[1:])
			}

			return execShow(ctx, io, cfg, log, args[0])
		},
	}
}

func execShow(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, id string) error {
	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	d, ok := s.engine.Record(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDealNotFound, id)
	}

	ctrl := view.NewController(s.engine, view.WithLogger(log.Named("view")))
	defer ctrl.Close()

	detail, _ := ctrl.Detail(id)

	io.Println("id:", d.ID)

	for _, col := range deal.DefaultColumns() {
		io.Printf("%s: %s\n", col.Key, view.FormatCell(col, &d))
	}

	io.Println("tags:", strings.Join(detail.Tags, ", "))
	io.Println("notes:", detail.Notes)
	io.Println()
	io.Println("# recent activity")

	if len(detail.Activities) == 0 {
		io.Println("(none)")
	}

	for _, a := range detail.Activities {
		io.Printf("%s  %-7s  %s  (%s)\n", view.FormatDate(a.Date), a.Type, a.Description, a.User)
	}

	return nil
}
