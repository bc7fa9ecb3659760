package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

type SettingService interface {
	// GetAll returns every setting for admins and the public ones otherwise.
	GetAll(ctx context.Context, admin bool) ([]*domain.Setting, error)
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)
	// Update changes the value of an existing setting.
	Update(ctx context.Context, key, value, userID string) (*domain.Setting, error)
	// UpdateBulk upserts every pair; keys that do not exist yet are created public.
	UpdateBulk(ctx context.Context, values map[string]string, userID string) ([]*domain.Setting, error)
	// Upsert sets a single value, creating a private setting when absent.
	Upsert(ctx context.Context, key, value, userID string) (*domain.Setting, error)
}
