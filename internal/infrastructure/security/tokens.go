package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// Claims is the JWT body shared by access and refresh tokens. Access tokens
// leave Type empty.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Type   string      `json:"type,omitempty"`
}

// TokenCodec signs HS256 tokens with a single process-wide secret.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (c *TokenCodec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *TokenCodec) IssueAccessToken(claims domain.TokenClaims) (string, error) {
	claims.Type = ""
	return c.sign(claims, c.accessTTL)
}

func (c *TokenCodec) IssueRefreshToken(claims domain.TokenClaims) (string, error) {
	claims.Type = domain.TokenTypeRefresh
	return c.sign(claims, c.refreshTTL)
}

func (c *TokenCodec) sign(tc domain.TokenClaims, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens minted in the same second distinct.
			ID:        uuid.NewString(),
			Subject:   tc.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: tc.UserID,
		Email:  tc.Email,
		Role:   tc.Role,
		Type:   tc.Type,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry of token.
func (c *TokenCodec) Verify(token string) (*domain.TokenClaims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Type:   claims.Type,
	}, nil
}
