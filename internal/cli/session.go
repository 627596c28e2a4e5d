package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calvinalkan/dealgrid/internal/config"
	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
	"github.com/calvinalkan/dealgrid/internal/prefs"
)

// session is an engine wired to the configured dataset and preference store.
type session struct {
	engine *grid.Engine
	log    *zap.Logger
	close  func() error
}

func openSession(ctx context.Context, cfg *config.Config, log *zap.Logger) (*session, error) {
	records := deal.Sample()

	if cfg.DatasetAbs != "" {
		loaded, err := deal.LoadFile(cfg.DatasetAbs)
		if err != nil {
			return nil, err
		}

		records = loaded
	}

	kv, closeKV, err := prefs.Open(ctx, prefs.Options{
		Backend:     cfg.Store,
		Path:        cfg.StorePathAbs,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	store := prefs.New(kv, prefs.WithKey(cfg.StateKey), prefs.WithLogger(log.Named("prefs")))

	engine, err := grid.New(ctx, records, defaultView(),
		grid.WithStore(store),
		grid.WithLogger(log.Named("grid")),
	)
	if err != nil {
		_ = closeKV()
		return nil, fmt.Errorf("init grid: %w", err)
	}

	return &session{engine: engine, log: log, close: closeKV}, nil
}

func defaultView() grid.ViewState {
	return grid.ViewState{Columns: deal.DefaultColumns()}
}

// scratch returns an engine seeded with the session's current view that
// does not persist its changes.
func (s *session) scratch(ctx context.Context) (*grid.Engine, error) {
	return grid.New(ctx, s.engine.Records(), s.engine.Snapshot().ViewState(), grid.WithLogger(s.log.Named("grid")))
}

func (s *session) Close() {
	if err := s.close(); err != nil {
		s.log.Warn("close store", zap.Error(err))
	}
}
