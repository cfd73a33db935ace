package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/config"
	"github.com/spec-kit/gis-site-service/internal/ratelimit"
)

const redisDialCheck = 3 * time.Second

// Redis holds the client backing submission rate limits. The service runs without it:
// limits fail open and readiness reports it as degraded.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client and checks the connection once; an unreachable server is logged, not fatal.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialCheck)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, submission limits will fail open", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}

	return &Redis{Client: client}
}

// Counter exposes the client to the rate limiter; nil when no client is configured.
func (r *Redis) Counter() ratelimit.Counter {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity for the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
