package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/config"
	"github.com/spec-kit/launch-watch/internal/persistence"
)

// Connect opens only the connection the configured sheet backend needs. The returned func closes
// whatever was opened and is safe to call after an error.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Handles, func(), error) {
	var h Handles
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Sheet.Backend {
	case config.SheetBackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return h, closeAll, err
		}
		closers = append(closers, pg.Close)
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				return h, closeAll, err
			}
		}
		h.Postgres = pg
	case config.SheetBackendSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return h, closeAll, err
		}
		closers = append(closers, db.Close)
		h.SQLite = db
	case config.SheetBackendRedis:
		r := persistence.NewRedis(ctx, cfg.Redis, logger)
		closers = append(closers, r.Close)
		h.Redis = r
	}
	return h, closeAll, nil
}
