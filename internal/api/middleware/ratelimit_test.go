package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/infrastructure/ratelimit"
)

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func limitedEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw)
	return e
}

func doRequest(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_RejectsAfterMax(t *testing.T) {
	cfg := RateLimitConfig{
		Name:    "auth",
		Max:     3,
		Window:  time.Minute,
		Code:    response.CodeAuthRateLimit,
		Message: "too many login attempts",
	}
	e := limitedEcho(RateLimit(ratelimit.NewMemoryStore(), cfg, zerolog.Nop()))

	for i := 1; i <= 3; i++ {
		rec := doRequest(e, "10.0.0.1")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "3" {
			t.Fatalf("expected limit header 3, got %q", got)
		}
	}

	rec := doRequest(e, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected remaining 0, got %q", got)
	}

	var body response.Failure
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Error.Code != response.CodeAuthRateLimit || body.Message != "too many login attempts" {
		t.Fatalf("unexpected body: %+v", body)
	}

	// Other clients keep their own budget.
	if rec := doRequest(e, "10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("other ip: expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	cfg := RateLimitConfig{Name: "global", Max: 1, Window: time.Minute, Code: response.CodeRateLimit}
	e := limitedEcho(RateLimit(failingStore{}, cfg, zerolog.Nop()))

	for i := 0; i < 3; i++ {
		if rec := doRequest(e, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("expected store failure to let request through, got %d", rec.Code)
		}
	}
}
