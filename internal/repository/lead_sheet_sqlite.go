package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/spec-kit/launch-watch/internal/domain"
)

type sqliteSheet struct {
	db   *sql.DB
	name string
}

// NewSQLiteSheet returns a SQLite-backed sheet stored in lead_rows.
func NewSQLiteSheet(db *sql.DB, name string) LeadSheet {
	return &sqliteSheet{db: db, name: name}
}

func (s *sqliteSheet) Name() string { return s.name }

func (s *sqliteSheet) Append(ctx context.Context, row domain.Row) error {
	if err := validateRow(row); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lead_rows (sheet, ts, full_name, email, phone, role, terms_accepted, appended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.name,
		row[0],
		row[1],
		row[2],
		row[3],
		row[4],
		row[5],
		time.Now().UTC().UnixMilli(),
	)
	return err
}

func (s *sqliteSheet) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lead_rows WHERE sheet = ?`, s.name).Scan(&n)
	return n, err
}

func (s *sqliteSheet) Rows(ctx context.Context, limit int) ([]domain.Row, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, full_name, email, phone, role, terms_accepted
		 FROM lead_rows WHERE sheet = ?
		 ORDER BY id
		 LIMIT ?`,
		s.name, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		row := make(domain.Row, domain.RowWidth)
		if err := rows.Scan(&row[0], &row[1], &row[2], &row[3], &row[4], &row[5]); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *sqliteSheet) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
