package ports

import (
	"time"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// TokenCodec signs and verifies access and refresh tokens.
type TokenCodec interface {
	IssueAccessToken(claims domain.TokenClaims) (string, error)
	IssueRefreshToken(claims domain.TokenClaims) (string, error)
	// Verify returns domain.ErrTokenExpired for a well-signed expired token
	// and domain.ErrTokenInvalid for anything else that fails.
	Verify(token string) (*domain.TokenClaims, error)
	RefreshTTL() time.Duration
}

// PasswordHasher is a salted adaptive hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) bool
}
