package redis

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 2}.options()

	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.ReadTimeout != opTimeout || opts.WriteTimeout != opTimeout {
		t.Fatalf("expected %v op timeouts, got read=%v write=%v", opTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	client, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", PingTimeout: time.Second})
	if err == nil {
		_ = client.Close()
		t.Fatalf("expected an error for an unreachable server")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Fatalf("error should name the address, got %v", err)
	}
}

func TestRateLimitStore_Key(t *testing.T) {
	s := NewRateLimitStore(nil)
	if got := s.key("auth:10.0.0.1"); got != "ratelimit:auth:10.0.0.1" {
		t.Fatalf("unexpected key %q", got)
	}
}
