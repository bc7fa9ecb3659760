package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// AuthService implements login, registration and the refresh-session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	tokens   ports.TokenCodec
	hasher   ports.PasswordHasher
	logger   zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	tokens ports.TokenCodec,
	hasher ports.PasswordHasher,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies the credentials and opens a new session. Unknown, inactive
// and wrong-password attempts fail with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string, meta domain.ClientMeta) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if user == nil || !user.IsActive {
		// Burn a comparison so missing accounts cost the same as bad passwords.
		s.hasher.Compare(s.fallbackHash(), password)
		return nil, domain.InvalidCredentials()
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, domain.InvalidCredentials()
	}

	claims := domain.ClaimsFor(user)
	access, err := s.tokens.IssueAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Token:     refresh,
		UserID:    user.ID,
		Status:    domain.SessionActive,
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("session_id", session.ID).Str("ip", meta.IP).Msg("login succeeded")
	return &ports.LoginResult{User: user.Auth(), AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthUser, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleEditor
	}
	if !role.Valid() {
		return nil, domain.Invalid("role", "role must be ADMIN or EDITOR")
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.AlreadyExists("email is already registered")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user.Auth(), nil
}

// RefreshAccessToken mints a new access token from a live session. The
// refresh token itself is returned to the caller unchanged.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	session, err := s.sessions.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NewError(domain.ErrTokenExpired, "refresh token is invalid or expired")
		}
		return "", err
	}
	if !session.Usable(s.now()) {
		return "", domain.NewError(domain.ErrTokenExpired, "refresh token is invalid or expired")
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || !claims.IsRefresh() || claims.UserID != session.UserID {
		return "", domain.NewError(domain.ErrTokenExpired, "refresh token is invalid or expired")
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Unauthorized("user not found or inactive")
		}
		return "", err
	}
	if !user.IsActive {
		return "", domain.Unauthorized("user not found or inactive")
	}

	access, err := s.tokens.IssueAccessToken(domain.ClaimsFor(user))
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// Logout revokes the session backing refreshToken. Unknown or already
// revoked tokens succeed silently.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (int64, error) {
	if refreshToken == "" {
		return 0, nil
	}
	n, err := s.sessions.RevokeByToken(ctx, refreshToken)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Msg("session revoked")
	}
	return n, nil
}

func (s *AuthService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	n, err := s.sessions.RevokeAllByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Str("user_id", userID).Int64("revoked", n).Msg("all sessions revoked")
	return n, nil
}

// ChangePassword replaces the password hash after checking the current
// password. Existing sessions stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.PasswordHash, currentPassword) {
		return &domain.Error{Kind: domain.ErrCurrentPasswordMismatch, Message: "current password is incorrect"}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*domain.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Auth(), nil
}

// Authenticate resolves an access token to the identity of a live, active user.
// Role and email come from the stored user, not from the token.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.NewError(domain.ErrTokenExpired, "token has expired")
		}
		return nil, domain.Unauthorized("invalid token")
	}
	if claims.IsRefresh() {
		return nil, domain.Unauthorized("invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("user not found or inactive")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.Unauthorized("user not found or inactive")
	}
	return &domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("timing-equalizer")
		if err != nil {
			s.logger.Warn().Err(err).Msg("could not prepare fallback password hash")
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
