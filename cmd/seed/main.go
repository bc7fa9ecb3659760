// Command seed loads the initial admin and editor accounts, sample articles
// and default site settings. Running it again leaves existing data alone.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/infrastructure/config"
	"github.com/orgprofile/cms-api/internal/infrastructure/db/mongo"
	"github.com/orgprofile/cms-api/internal/infrastructure/security"
	"github.com/orgprofile/cms-api/internal/seed"
	"github.com/orgprofile/cms-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "cms-seed"})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongo.NewUserRepository(db)
	articles := mongo.NewArticleRepository(db)
	settings := mongo.NewSettingRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, mongo.NewSessionRepository(db), articles, settings); err != nil {
		return err
	}

	s := seed.New(users, articles, settings, security.NewHasher(cfg.JWT.BcryptCost), log)
	if err := s.Run(ctx, seed.Config{
		Admin: seed.Account{
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
			Name:     "Administrator",
			Role:     domain.RoleAdmin,
		},
		Editor: seed.Account{
			Email:    cfg.Seed.EditorEmail,
			Password: cfg.Seed.EditorPassword,
			Name:     "Editor",
			Role:     domain.RoleEditor,
		},
	}); err != nil {
		return err
	}

	log.Info().Msg("seeding completed")
	return nil
}
