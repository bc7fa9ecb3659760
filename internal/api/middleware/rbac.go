package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// Authorize admits callers whose role is one of roles. It must run after
// Authenticate; a missing identity is treated as forbidden.
func Authorize(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || !slices.Contains(roles, id.Role) {
				return domain.Forbidden("you do not have access to this resource")
			}
			return next(c)
		}
	}
}

// RequirePermission is Authorize driven by the domain.Permissions table.
func RequirePermission(perm domain.Permission) echo.MiddlewareFunc {
	return Authorize(domain.Permissions[perm]...)
}
