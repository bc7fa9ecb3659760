package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port       string `env:"PORT,         default=3000"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`
	CORSOrigin string `env:"FRONTEND_URL, default=http://localhost:5173"`
	BodyLimit  string `env:"BODY_LIMIT,   default=10M"`

	JWT        JWTConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Cloudinary CloudinaryConfig
	Views      ViewsConfig
	Seed       SeedConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
	BcryptCost int           `env:"BCRYPT_COST,     default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=org_profile_cms"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// RateLimitConfig selects the rate-limit backend. "memory" keeps counters
// in-process; "redis" shares them between instances.
type RateLimitConfig struct {
	Backend string        `env:"RATE_LIMIT_BACKEND,  default=memory"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,   default=15m"`
	Max     int64         `env:"RATE_LIMIT_MAX,      default=100"`
	AuthMax int64         `env:"AUTH_RATE_LIMIT_MAX, default=5"`
}

type CloudinaryConfig struct {
	CloudName  string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey     string `env:"CLOUDINARY_API_KEY"`
	APISecret  string `env:"CLOUDINARY_API_SECRET"`
	RootFolder string `env:"CLOUDINARY_ROOT_FOLDER, default=web-profil-organisasi"`
}

type ViewsConfig struct {
	Workers int `env:"VIEW_WORKERS, default=4"`
}

// SeedConfig is read only by the seed command.
type SeedConfig struct {
	AdminEmail     string `env:"SEED_ADMIN_EMAIL,     default=admin@example.com"`
	AdminPassword  string `env:"SEED_ADMIN_PASSWORD,  default=admin12345"`
	EditorEmail    string `env:"SEED_EDITOR_EMAIL,    default=editor@example.com"`
	EditorPassword string `env:"SEED_EDITOR_PASSWORD, default=editor12345"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive"))
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BACKEND must be memory or redis, got %q", c.RateLimit.Backend))
	}
	if c.RateLimit.Window <= 0 || c.RateLimit.Max <= 0 || c.RateLimit.AuthMax <= 0 {
		errs = append(errs, errors.New("rate limit window and maxima must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool  { return c.Env == EnvProduction }
func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

// MediaConfigured reports whether uploads can reach the media host.
func (c *Config) MediaConfigured() bool {
	return c.Cloudinary.CloudName != "" && c.Cloudinary.APIKey != "" && c.Cloudinary.APISecret != ""
}
