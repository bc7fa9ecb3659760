package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role // defaults to EDITOR
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Role     *domain.Role
	Password *string
}

// UserSummary is a user row in the admin listing.
type UserSummary struct {
	domain.PublicUser
	ArticleCount int64 `json:"articleCount"`
}

type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]*domain.PublicUser, error)
	Get(ctx context.Context, id string) (*domain.PublicUser, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.PublicUser, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.PublicUser, error)
	SetStatus(ctx context.Context, id string, active bool) (*domain.PublicUser, error)
	// Delete removes the user. requesterID may not delete itself.
	Delete(ctx context.Context, id, requesterID string) error
	ListPage(ctx context.Context, page, limit int) ([]*UserSummary, PageMeta, error)
}
