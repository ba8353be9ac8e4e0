// Package redis builds the client backing the fixed-window rate limiter.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config holds the connection settings for the rate-limit store.
type Config struct {
	Addr string
	DB   int
}

// Connect opens a client and verifies the server answers a ping before the
// limiter starts counting against it. The limiter itself fails open, so a
// broken connection is caught here at startup rather than silently disabling
// rate limiting at request time.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
