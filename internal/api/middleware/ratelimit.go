package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/makerhub/workshop-admin/internal/api/metrics"
	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// RateLimiter is a fixed-window counter backed by Redis, keyed by client
// address. Counters expire with the window, so state survives nothing but
// the window itself.
type RateLimiter struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRateLimiter(client *redis.Client, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{client: client, log: log}
}

// Limit returns a middleware enforcing max requests per window for the given
// scope. Scopes keep the login budget separate from general traffic. A Redis
// failure lets the request through; an unavailable limiter should not take
// the whole API down with it.
func (l *RateLimiter) Limit(scope string, max int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", scope, c.RealIP())

			n, err := l.client.Incr(ctx, key).Result()
			if err != nil {
				l.log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if n == 1 {
				if err := l.client.Expire(ctx, key, window).Err(); err != nil {
					l.log.Warn().Err(err).Str("key", key).Msg("rate limiter expire failed")
				}
			}
			if n > int64(max) {
				metrics.GuardRejectionsTotal.WithLabelValues("ratelimit").Inc()
				metrics.RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
				return domain.ErrRateLimited
			}

			return next(c)
		}
	}
}
