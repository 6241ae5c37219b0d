package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/launch-watch/internal/domain"
)

// MemorySheet keeps rows in process memory. Used for demos and tests.
type MemorySheet struct {
	name string
	mu   sync.RWMutex
	rows []domain.Row
}

// NewMemorySheet creates an empty sheet.
func NewMemorySheet(name string) *MemorySheet {
	return &MemorySheet{name: name}
}

func (s *MemorySheet) Name() string { return s.name }

func (s *MemorySheet) Append(ctx context.Context, row domain.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRow(row); err != nil {
		return err
	}
	cp := append(domain.Row(nil), row...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cp)
	return nil
}

func (s *MemorySheet) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

func (s *MemorySheet) Rows(ctx context.Context, limit int) ([]domain.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Row, 0, n)
	for _, row := range s.rows[:n] {
		out = append(out, append(domain.Row(nil), row...))
	}
	return out, nil
}

func (s *MemorySheet) Ping(ctx context.Context) error { return nil }
