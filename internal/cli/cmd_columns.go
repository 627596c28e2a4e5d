package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/view"
)

// ColumnsCmd returns the columns command.
func ColumnsCmd(cfg *config.Config, log *zap.Logger) *Command {
	fs := flag.NewFlagSet("columns", flag.ContinueOnError)
	fs.StringSlice("hide", nil, "Hide columns (comma separated keys)")
	fs.StringSlice("show", nil, "Show columns (comma separated keys)")
	fs.StringArray("move", nil, "Move a column to a 1-based position: `key=pos`")
	fs.StringArray("width", nil, "Resize a column in pixels: `key=px` (minimum 80)")
	fs.Bool("reset", false, "Restore the default layout before applying other flags")

	return &Command{
		Flags: fs,
		Usage: "columns [flags]",
		Short: "Show or change the saved column layout",
		Long:  "Change column visibility, order and width. The resulting layout is saved and printed.",
		Group: groupPrefs,
		Examples: []string{
			"columns",
			"columns --hide company,priority --show source",
			"columns --move owner=1 --width dealName=260",
			"columns --reset",
		},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrTooManyArgs, args)
			}

			return execColumns(ctx, io, cfg, log, fs)
		},
	}
}

func execColumns(ctx context.Context, io *IO, cfg *config.Config, log *zap.Logger, fs *flag.FlagSet) error {
	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	if reset, _ := fs.GetBool("reset"); reset {
		s.engine.UpdateColumns(deal.DefaultColumns())
	}

	ctrl := view.NewController(s.engine, view.WithLogger(log.Named("view")))
	defer ctrl.Close()

	m := ctrl.ColumnManager()

	hide, _ := fs.GetStringSlice("hide")
	show, _ := fs.GetStringSlice("show")

	for _, set := range []struct {
		keys    []string
		visible bool
	}{{hide, false}, {show, true}} {
		for _, name := range set.keys {
			key, err := columnKey(m.Columns(), name)
			if err != nil {
				return err
			}

			cols := m.Columns()
			if cols[deal.ColumnIndex(cols, key)].Visible == set.visible {
				io.Warn("column "+string(key)+" unchanged", "it is already "+visibility(set.visible))
				continue
			}

			if err := m.ToggleVisibility(key); err != nil {
				return err
			}
		}
	}

	moves, _ := fs.GetStringArray("move")
	for _, mv := range moves {
		name, pos, err := splitAssign(mv, ErrInvalidMove)
		if err != nil {
			return err
		}

		key, err := columnKey(m.Columns(), name)
		if err != nil {
			return err
		}

		if err := m.Move(deal.ColumnIndex(m.Columns(), key), pos-1); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMove, err)
		}
	}

	if m.Dirty() {
		m.Save()
	}

	widths, _ := fs.GetStringArray("width")
	for _, w := range widths {
		name, px, err := splitAssign(w, ErrInvalidWidth)
		if err != nil {
			return err
		}

		key, err := columnKey(s.engine.Columns(), name)
		if err != nil {
			return err
		}

		cols := s.engine.Columns()
		current := cols[deal.ColumnIndex(cols, key)].Width

		if err := ctrl.BeginResize(key, 0); err != nil {
			return err
		}

		if _, err := ctrl.MoveResize(px - current); err != nil {
			return err
		}

		if err := ctrl.EndResize(); err != nil {
			return err
		}
	}

	printColumns(io, s.engine.Columns())

	return nil
}

func columnKey(cols []deal.ColumnConfig, name string) (deal.Field, error) {
	key, err := deal.ParseField(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidColumn, err)
	}

	if deal.ColumnIndex(cols, key) < 0 {
		return "", fmt.Errorf("%w: %s is not in the layout", ErrInvalidColumn, key)
	}

	return key, nil
}

// splitAssign parses "key=n".
func splitAssign(s string, sentinel error) (string, int, error) {
	name, num, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("%w: %q (want key=n)", sentinel, s)
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q (want key=n)", sentinel, s)
	}

	return name, n, nil
}

func visibility(v bool) string {
	if v {
		return "visible"
	}

	return "hidden"
}

func printColumns(io *IO, cols []deal.ColumnConfig) {
	io.Printf("%-3s %-14s %-15s %6s  %s\n", "#", "KEY", "LABEL", "WIDTH", "VISIBLE")

	for i, col := range cols {
		io.Printf("%-3d %-14s %-15s %6d  %s\n", i+1, col.Key, col.Label, col.Width, visibility(col.Visible))
	}
}
