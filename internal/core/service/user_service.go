package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// UserService implements admin user management.
type UserService struct {
	users    ports.UserRepository
	articles ports.ArticleRepository
	hasher   ports.PasswordHasher
	logger   zerolog.Logger
	now      func() time.Time
}

func NewUserService(users ports.UserRepository, articles ports.ArticleRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, articles: articles, hasher: hasher, logger: logger, now: time.Now}
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.PublicUser, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

// Create adds a user on behalf of an admin. A taken email is reported as a
// validation failure on the email field.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.PublicUser, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleEditor
	}
	if !role.Valid() {
		return nil, domain.Invalid("role", "role must be ADMIN or EDITOR")
	}
	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", u.ID).Str("role", string(role)).Msg("user created")
	return u.Public(), nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.PublicUser, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != u.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, u.ID); err != nil {
			return nil, err
		}
		u.Email = *in.Email
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.Invalid("role", "role must be ADMIN or EDITOR")
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Msg("user updated")
	return u.Public(), nil
}

// SetStatus activates or deactivates a user. Deactivation takes effect on the
// user's next request because authentication re-reads the account.
func (s *UserService) SetStatus(ctx context.Context, id string, active bool) (*domain.PublicUser, error) {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Bool("active", active).Msg("user status changed")
	return u.Public(), nil
}

func (s *UserService) Delete(ctx context.Context, id, requesterID string) error {
	if id == requesterID {
		return domain.Invalid("id", "you cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("by", requesterID).Msg("user deleted")
	return nil
}

// ListPage returns a page of users with the number of articles each has authored.
func (s *UserService) ListPage(ctx context.Context, page, limit int) ([]*ports.UserSummary, ports.PageMeta, error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.users.ListPage(ctx, page, limit)
	if err != nil {
		return nil, ports.PageMeta{}, err
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	counts, err := s.articles.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, ports.PageMeta{}, err
	}

	out := make([]*ports.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, &ports.UserSummary{PublicUser: *u.Public(), ArticleCount: counts[u.ID]})
	}
	return out, pageMeta(page, limit, total), nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return emailTaken()
	}
	return nil
}

func emailTaken() error {
	return domain.Invalid("email", "email is already used by another user")
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func pageMeta(page, limit int, total int64) ports.PageMeta {
	return ports.PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
