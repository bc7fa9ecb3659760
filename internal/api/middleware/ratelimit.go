package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/api/metrics"
	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// RateLimitConfig configures one limiter. Name separates its counters from
// other limiters sharing the store.
type RateLimitConfig struct {
	Name    string
	Max     int64
	Window  time.Duration
	Code    string
	Message string
}

// RateLimit allows Max requests per client IP per Window. When the store
// fails the request is let through and the failure logged.
func RateLimit(store ports.RateLimitStore, cfg RateLimitConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.Name + ":" + c.RealIP()
			count, resetAt, err := store.Hit(c.Request().Context(), key, cfg.Window)
			if err != nil {
				log.Warn().Err(err).Str("limiter", cfg.Name).Msg("rate limit store unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(cfg.Max, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(cfg.Max-count, 0), 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if count > cfg.Max {
				retry := int(time.Until(resetAt).Seconds()) + 1
				h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
				metrics.RateLimitRejectionsTotal.WithLabelValues(cfg.Name).Inc()
				return response.Fail(c, http.StatusTooManyRequests, cfg.Code, cfg.Message, nil)
			}
			return next(c)
		}
	}
}
