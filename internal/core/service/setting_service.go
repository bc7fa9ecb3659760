package service

import (
	"context"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

type SettingService struct {
	repo   ports.SettingRepository
	logger zerolog.Logger
}

func NewSettingService(repo ports.SettingRepository, logger zerolog.Logger) *SettingService {
	return &SettingService{repo: repo, logger: logger}
}

func (s *SettingService) GetAll(ctx context.Context, admin bool) ([]*domain.Setting, error) {
	out, err := s.repo.List(ctx, !admin)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Setting{}
	}
	return out, nil
}

func (s *SettingService) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	return s.repo.FindByKey(ctx, key)
}

func (s *SettingService) Update(ctx context.Context, key, value, userID string) (*domain.Setting, error) {
	st, err := s.repo.UpdateValue(ctx, key, value, optional(userID))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("key", key).Str("by", userID).Msg("setting updated")
	return st, nil
}

// UpdateBulk applies the values in key order and stops at the first failure.
func (s *SettingService) UpdateBulk(ctx context.Context, values map[string]string, userID string) ([]*domain.Setting, error) {
	if len(values) == 0 {
		return nil, domain.Invalid("settings", "at least one setting is required")
	}
	out := make([]*domain.Setting, 0, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		st, err := s.repo.Upsert(ctx, key, values[key], true, optional(userID))
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	s.logger.Info().Int("count", len(out)).Str("by", userID).Msg("settings updated")
	return out, nil
}

func (s *SettingService) Upsert(ctx context.Context, key, value, userID string) (*domain.Setting, error) {
	st, err := s.repo.Upsert(ctx, key, value, false, optional(userID))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("key", key).Str("by", userID).Msg("setting upserted")
	return st, nil
}
