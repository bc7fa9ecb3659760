// Command api serves the organisation profile CMS over HTTP.
//
//	@title						Organisation Profile CMS API
//	@version					1.0
//	@description				Content management backend for an organisation profile website.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/orgprofile/cms-api/docs"
	"github.com/orgprofile/cms-api/internal/api"
	"github.com/orgprofile/cms-api/internal/api/handler"
	"github.com/orgprofile/cms-api/internal/core/ports"
	"github.com/orgprofile/cms-api/internal/core/service"
	"github.com/orgprofile/cms-api/internal/infrastructure/config"
	"github.com/orgprofile/cms-api/internal/infrastructure/db/mongo"
	"github.com/orgprofile/cms-api/internal/infrastructure/db/redis"
	"github.com/orgprofile/cms-api/internal/infrastructure/media"
	"github.com/orgprofile/cms-api/internal/infrastructure/queue"
	"github.com/orgprofile/cms-api/internal/infrastructure/ratelimit"
	"github.com/orgprofile/cms-api/internal/infrastructure/security"
	"github.com/orgprofile/cms-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cms-api",
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongo.NewUserRepository(db)
	sessions := mongo.NewSessionRepository(db)
	articles := mongo.NewArticleRepository(db)
	settings := mongo.NewSettingRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, sessions, articles, settings); err != nil {
		return err
	}

	checks := map[string]handler.Check{"mongo": handler.MongoCheck(db)}

	var limiter ports.RateLimitStore = ratelimit.NewMemoryStore()
	if cfg.RateLimit.Backend == "redis" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		limiter = redis.NewRateLimitStore(rdb)
		checks["redis"] = handler.RedisCheck(rdb)
	}

	var store ports.MediaStorage = media.UnconfiguredStore{}
	if cfg.MediaConfigured() {
		cld, err := media.NewCloudinaryStore(media.Config{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
		})
		if err != nil {
			return err
		}
		store = cld
	} else {
		log.Warn().Msg("cloudinary credentials missing, uploads are disabled")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	views := queue.NewDispatcher(cfg.Views.Workers, articles, log)
	views.Start(workerCtx)
	defer func() {
		stopWorkers()
		views.Wait()
	}()

	codec := security.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := security.NewHasher(cfg.JWT.BcryptCost)
	auth := service.NewAuthService(users, sessions, codec, hasher, log)

	e := api.NewRouter(api.Options{
		Development:    cfg.IsDevelopment(),
		SecureCookies:  cfg.IsProduction(),
		CORSOrigin:     cfg.CORSOrigin,
		BodyLimit:      cfg.BodyLimit,
		RefreshTTL:     codec.RefreshTTL(),
		RateLimitStore: limiter,
		RateWindow:     cfg.RateLimit.Window,
		RateMax:        cfg.RateLimit.Max,
		AuthRateMax:    cfg.RateLimit.AuthMax,
		Checks:         checks,
	}, api.Services{
		Auth:          auth,
		Authenticator: auth,
		Users:         service.NewUserService(users, articles, hasher, log),
		Articles:      service.NewArticleService(articles, views, log),
		Settings:      service.NewSettingService(settings, log),
		Media:         service.NewMediaService(store, cfg.Cloudinary.RootFolder, log),
		Dashboard:     service.NewDashboardService(articles, users),
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
}
