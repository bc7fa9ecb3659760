// Package redis backs the shared rate-limit counters used when the API runs
// as more than one instance. Only fixed-window hit counters live here; no
// application data is stored in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 5 * time.Second
	// Rate-limit calls sit on the request path, so a slow Redis must fail
	// fast instead of stalling the handler.
	opTimeout = 500 * time.Millisecond
)

// Config addresses the Redis instance holding the rate-limit counters.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PingTimeout bounds the startup connectivity check.
	PingTimeout time.Duration
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	}
}

// Connect opens the client for the rate-limit store and refuses to start
// when the server cannot be reached.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("rate limit store %s unreachable: %w", cfg.Addr, err)
	}
	return client, nil
}
