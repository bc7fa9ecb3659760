package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

const identityKey = "identity"

// IdentityFrom returns the caller attached by Authenticate or OptionalAuth.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", domain.Unauthorized("authentication token is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", domain.Unauthorized("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// Authenticate resolves the bearer token to a live identity and rejects the
// request otherwise. Expired tokens surface as domain.ErrTokenExpired.
func Authenticate(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			id, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// the request through unauthenticated otherwise.
func OptionalAuth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, err := bearerToken(c); err == nil {
				if id, err := authn.Authenticate(c.Request().Context(), token); err == nil {
					SetIdentity(c, id)
				}
			}
			return next(c)
		}
	}
}
