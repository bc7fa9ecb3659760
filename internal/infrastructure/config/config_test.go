package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" || cfg.Env != EnvDevelopment {
		t.Fatalf("unexpected defaults: port=%s env=%s", cfg.Port, cfg.Env)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute || cfg.JWT.RefreshTTL != 7*24*time.Hour || cfg.JWT.BcryptCost != 10 {
		t.Fatalf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if cfg.RateLimit.Backend != "memory" || cfg.RateLimit.Max != 100 || cfg.RateLimit.AuthMax != 5 || cfg.RateLimit.Window != 15*time.Minute {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Cloudinary.RootFolder != "web-profil-organisasi" {
		t.Fatalf("unexpected root folder %q", cfg.Cloudinary.RootFolder)
	}
	if cfg.MediaConfigured() || cfg.IsProduction() {
		t.Fatalf("media must be unconfigured and env not production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":            "s3cret",
		"ENV":                   "production",
		"JWT_ACCESS_TTL":        "5m",
		"RATE_LIMIT_BACKEND":    "redis",
		"CLOUDINARY_CLOUD_NAME": "demo",
		"CLOUDINARY_API_KEY":    "key",
		"CLOUDINARY_API_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() || cfg.JWT.AccessTTL != 5*time.Minute || cfg.RateLimit.Backend != "redis" || !cfg.MediaConfigured() {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Validation(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"RATE_LIMIT_BACKEND": "memcached",
	}))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"JWT_SECRET", "RATE_LIMIT_BACKEND"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}
