package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

type SettingRepository interface {
	// List returns settings ordered by key; publicOnly restricts to IsPublic.
	List(ctx context.Context, publicOnly bool) ([]*domain.Setting, error)
	FindByKey(ctx context.Context, key string) (*domain.Setting, error)
	UpdateValue(ctx context.Context, key, value string, updatedBy *string) (*domain.Setting, error)
	// Upsert sets value for key, creating the setting with isPublic when absent.
	Upsert(ctx context.Context, key, value string, isPublic bool, updatedBy *string) (*domain.Setting, error)
	// Seed creates the setting when absent and otherwise refreshes only its
	// description and visibility.
	Seed(ctx context.Context, s *domain.Setting) error
}
