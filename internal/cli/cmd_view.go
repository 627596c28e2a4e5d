package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/tui"
	"github.com/calvinalkan/dealgrid/internal/view"
)

// ViewCmd returns the view command.
func ViewCmd(cfg *config.Config, log *zap.Logger) *Command {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.Int("page", view.DefaultPageSize, "Rows moved by PageUp/PageDown")
	fs.Bool("no-mouse", false, "Disable mouse support")

	return &Command{
		Flags: fs,
		Usage: "view [flags]",
		Short: "Open the interactive grid",
		Long: `Open the deals grid in the terminal. Sort, filter and column changes are saved;
selection and expansion last for the session. Cell edits are recorded but never change the data.`,
		Group: groupBrowse,
		Examples: []string{
			"view",
			"view --page 20 --no-mouse",
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrTooManyArgs, args)
			}

			return execView(ctx, io, cfg, log, fs)
		},
	}
}

func execView(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, fs *flag.FlagSet) error {
	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	page, _ := fs.GetInt("page")

	ctrl := view.NewController(s.engine,
		view.WithLogger(log.Named("view")),
		view.WithPageSize(page),
	)
	defer ctrl.Close()

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(io.in),
		tea.WithOutput(io.out),
		tea.WithAltScreen(),
	}

	if noMouse, _ := fs.GetBool("no-mouse"); !noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	_, err = tea.NewProgram(tui.New(ctx, ctrl), opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run grid: %w", err)
	}

	return nil
}
