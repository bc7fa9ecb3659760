package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// SessionRepository persists refresh sessions. Tokens are passed raw;
// implementations decide how they are keyed at rest.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	// FindByToken returns the session for the exact refresh token, or
	// a NotFound error.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	// RevokeByToken marks the matching ACTIVE session REVOKED and returns
	// how many were transitioned (0 or 1). Missing or already revoked
	// tokens are not an error.
	RevokeByToken(ctx context.Context, token string) (int64, error)
	// RevokeAllByUser revokes every ACTIVE session of userID and returns
	// how many were transitioned.
	RevokeAllByUser(ctx context.Context, userID string) (int64, error)
}
