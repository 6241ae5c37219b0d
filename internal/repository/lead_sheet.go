package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/launch-watch/internal/config"
	"github.com/spec-kit/launch-watch/internal/domain"
	"github.com/spec-kit/launch-watch/internal/persistence"
)

// ErrInvalidRow is returned when a row does not have one cell per sheet column.
var ErrInvalidRow = errors.New("invalid lead row")

// LeadSheet is an append-only tabular store of lead rows. Rows come back in append order.
type LeadSheet interface {
	Name() string
	Append(ctx context.Context, row domain.Row) error
	Count(ctx context.Context) (int64, error)
	Rows(ctx context.Context, limit int) ([]domain.Row, error)
	Ping(ctx context.Context) error
}

// Handles carries the connections a sheet backend may need.
type Handles struct {
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
	SQLite   *persistence.SQLite
}

// OpenSheet returns the sheet selected by static configuration.
func OpenSheet(cfg config.SheetConfig, h Handles) (LeadSheet, error) {
	name := SheetName(cfg)
	switch cfg.Backend {
	case "", config.SheetBackendMemory:
		return NewMemorySheet(name), nil
	case config.SheetBackendPostgres:
		if h.Postgres.PoolHandle() == nil {
			return nil, fmt.Errorf("sheet backend %q requires POSTGRES_DSN", cfg.Backend)
		}
		return NewPostgresSheet(h.Postgres.PoolHandle(), name), nil
	case config.SheetBackendSQLite:
		if h.SQLite == nil || h.SQLite.DB == nil {
			return nil, fmt.Errorf("sheet backend %q requires a sqlite handle", cfg.Backend)
		}
		return NewSQLiteSheet(h.SQLite.DB, name), nil
	case config.SheetBackendRedis:
		if h.Redis == nil || h.Redis.Client == nil {
			return nil, fmt.Errorf("sheet backend %q requires a redis client", cfg.Backend)
		}
		return NewRedisSheet(h.Redis.Client, h.Redis.KeyPrefix, name), nil
	default:
		return nil, fmt.Errorf("unknown sheet backend %q", cfg.Backend)
	}
}

// SheetName joins the spreadsheet id and tab name into the stored sheet identity.
func SheetName(cfg config.SheetConfig) string {
	switch {
	case cfg.ID == "":
		return cfg.Name
	case cfg.Name == "":
		return cfg.ID
	default:
		return cfg.ID + "/" + cfg.Name
	}
}

func validateRow(row domain.Row) error {
	if len(row) != domain.RowWidth {
		return fmt.Errorf("%w: %d cells, want %d", ErrInvalidRow, len(row), domain.RowWidth)
	}
	return nil
}
