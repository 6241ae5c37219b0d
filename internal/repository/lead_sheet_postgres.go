package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/launch-watch/internal/domain"
)

type postgresSheet struct {
	pool *pgxpool.Pool
	name string
}

// NewPostgresSheet returns a Postgres-backed sheet stored in lead_rows.
func NewPostgresSheet(pool *pgxpool.Pool, name string) LeadSheet {
	return &postgresSheet{pool: pool, name: name}
}

func (s *postgresSheet) Name() string { return s.name }

func (s *postgresSheet) Append(ctx context.Context, row domain.Row) error {
	if err := validateRow(row); err != nil {
		return err
	}
	const query = `
        INSERT INTO lead_rows (sheet, ts, full_name, email, phone, role, terms_accepted)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.pool.Exec(ctx, query,
		s.name,
		row[0],
		row[1],
		row[2],
		row[3],
		row[4],
		row[5],
	)
	return err
}

func (s *postgresSheet) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM lead_rows WHERE sheet=$1`

	var n int64
	if err := s.pool.QueryRow(ctx, query, s.name).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *postgresSheet) Rows(ctx context.Context, limit int) ([]domain.Row, error) {
	const query = `
        SELECT ts, full_name, email, phone, role, terms_accepted
        FROM lead_rows WHERE sheet=$1
        ORDER BY id
        LIMIT $2`

	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := s.pool.Query(ctx, query, s.name, lim)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Row, error) {
		row := make(domain.Row, domain.RowWidth)
		if err := r.Scan(&row[0], &row[1], &row[2], &row[3], &row[4], &row[5]); err != nil {
			return nil, err
		}
		return row, nil
	})
}

func (s *postgresSheet) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
