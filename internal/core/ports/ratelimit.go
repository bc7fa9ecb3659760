package ports

import (
	"context"
	"time"
)

// RateLimitStore counts hits per key in fixed windows.
type RateLimitStore interface {
	// Hit records one request for key and returns the hit count of the
	// current window and the time the window resets.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}
