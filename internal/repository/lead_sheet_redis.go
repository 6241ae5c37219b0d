package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/launch-watch/internal/domain"
)

// redisSheet stores each row as a JSON array pushed onto one list. RPUSH is atomic and keeps
// append order.
type redisSheet struct {
	client redis.Cmdable
	key    string
	name   string
}

// NewRedisSheet returns a Redis-backed sheet.
func NewRedisSheet(client redis.Cmdable, prefix, name string) LeadSheet {
	key := "sheet:" + name
	if prefix != "" {
		key = prefix + ":" + key
	}
	return &redisSheet{client: client, key: key, name: name}
}

func (s *redisSheet) Name() string { return s.name }

func (s *redisSheet) Append(ctx context.Context, row domain.Row) error {
	if err := validateRow(row); err != nil {
		return err
	}
	encoded, err := json.Marshal([]string(row))
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, s.key, encoded).Err()
}

func (s *redisSheet) Count(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, s.key).Result()
}

func (s *redisSheet) Rows(ctx context.Context, limit int) ([]domain.Row, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	values, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	out := make([]domain.Row, 0, len(values))
	for i, v := range values {
		var row domain.Row
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *redisSheet) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
