package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// UserFilter narrows user listings. Zero values mean "no filter".
type UserFilter struct {
	Role     domain.Role
	IsActive *bool
	Search   string // case-insensitive match on name or email
}

// UserRepository persists staff accounts. Lookups of missing users return
// domain.ErrUserNotFound; a taken email on create returns an AlreadyExists error.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// ListPage returns a page of users (newest first) and the total count.
	ListPage(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
