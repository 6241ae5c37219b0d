package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/config"
)

const redisDialTimeout = 3 * time.Second

// Redis holds the client backing the redis sheet and the key prefix its lists live under.
type Redis struct {
	Client    *redis.Client
	KeyPrefix string
}

// NewRedis builds a client and probes it once. An unreachable server is only logged; the
// readiness probe keeps reporting it until it comes back.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	fields := []zap.Field{zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB), zap.String("prefix", cfg.KeyPrefix)}
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable; sheet appends will fail until it recovers", append(fields, zap.Error(err))...)
	} else {
		logger.Info("connected to redis", fields...)
	}

	return &Redis{Client: client, KeyPrefix: cfg.KeyPrefix}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
