package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

// Counter is the subset of the redis client used for fixed window counting.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter caps requests per client within a fixed window.
type Limiter struct {
	store  Counter
	prefix string
	limit  int64
	window time.Duration
	logger *zap.Logger
}

// New builds a limiter; a non-positive limit disables it.
func New(store Counter, prefix string, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{store: store, prefix: prefix, limit: int64(limit), window: window, logger: logger}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.store == nil || l.limit <= 0 {
		return true, nil
	}
	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)
	count, err := l.store.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	// NX leaves a running window alone and repairs a key whose first EXPIRE was lost.
	if err := l.store.ExpireNX(ctx, redisKey, l.window).Err(); err != nil {
		return true, err
	}
	return count <= l.limit, nil
}

// Middleware rejects clients over the limit. Redis failures let the request through.
func (l *Limiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := l.Allow(c.UserContext(), c.IP())
		if err != nil {
			l.logger.Warn("rate limit check failed", zap.String("ip", c.IP()), zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return apperrors.NewRateLimited("too many submissions, please try again later")
		}
		return c.Next()
	}
}
