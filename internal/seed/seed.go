// Package seed loads the initial accounts, sample articles and default site
// settings. Every step is idempotent: existing users and articles are left
// untouched and existing settings keep their values.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type ArticleStore interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	Create(ctx context.Context, a *domain.Article) error
}

type SettingStore interface {
	Seed(ctx context.Context, s *domain.Setting) error
}

// Account is one staff account to ensure.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

type Config struct {
	Admin  Account
	Editor Account
}

type Seeder struct {
	users    UserStore
	articles ArticleStore
	settings SettingStore
	hasher   ports.PasswordHasher
	log      zerolog.Logger
	now      func() time.Time
}

func New(users UserStore, articles ArticleStore, settings SettingStore, hasher ports.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{
		users:    users,
		articles: articles,
		settings: settings,
		hasher:   hasher,
		log:      log,
		now:      time.Now,
	}
}

// Run seeds the accounts, then the sample articles authored by them, then the
// default settings.
func (s *Seeder) Run(ctx context.Context, cfg Config) error {
	admin, err := s.ensureUser(ctx, cfg.Admin)
	if err != nil {
		return err
	}
	editor, err := s.ensureUser(ctx, cfg.Editor)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	for _, a := range withIDs(sampleArticles(now, admin.ID, editor.ID), now) {
		if err := s.ensureArticle(ctx, a); err != nil {
			return err
		}
	}

	for _, st := range DefaultSettings() {
		if err := s.settings.Seed(ctx, st); err != nil {
			return fmt.Errorf("seed setting %s: %w", st.Key, err)
		}
	}
	s.log.Info().Int("settings", len(DefaultSettings())).Msg("settings synced")
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, acc Account) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(acc.Email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.log.Info().Str("email", email).Msg("user exists, skipping")
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}

	hash, err := s.hasher.Hash(acc.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         acc.Name,
		Role:         acc.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}
	s.log.Info().Str("email", email).Str("role", string(acc.Role)).Msg("user created")
	return u, nil
}

func (s *Seeder) ensureArticle(ctx context.Context, a *domain.Article) error {
	_, err := s.articles.FindBySlug(ctx, a.Slug)
	if err == nil {
		s.log.Info().Str("slug", a.Slug).Msg("article exists, skipping")
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("find article %s: %w", a.Slug, err)
	}
	if err := s.articles.Create(ctx, a); err != nil {
		return fmt.Errorf("create article %s: %w", a.Slug, err)
	}
	s.log.Info().Str("slug", a.Slug).Msg("article created")
	return nil
}
