package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore is a fixed-window hit counter shared by every API instance.
// Key format: ratelimit:<key>
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore creates a RateLimitStore wrapping the given Redis client.
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Hit increments the counter for key. The first hit of a window starts its expiry.
func (s *RateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k := s.key(key)
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// The key lost its expiry (crash between INCR and PEXPIRE); restart the window.
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}

func (s *RateLimitStore) key(key string) string {
	return "ratelimit:" + key
}
