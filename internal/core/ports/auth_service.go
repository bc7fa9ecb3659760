package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// RegisterInput carries the registration fields. Role is optional.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User         *domain.AuthUser
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Login(ctx context.Context, email, password string, meta domain.ClientMeta) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.AuthUser, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes the session behind refreshToken and returns 1 when an
	// ACTIVE session was transitioned, 0 otherwise.
	Logout(ctx context.Context, refreshToken string) (int64, error)
	// LogoutAll revokes every ACTIVE session of the user and returns how many.
	LogoutAll(ctx context.Context, userID string) (int64, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	GetCurrentUser(ctx context.Context, userID string) (*domain.AuthUser, error)
}

// Authenticator resolves a bearer access token to a live identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error)
}
