package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/middleware"
	"github.com/orgprofile/cms-api/internal/core/domain"
)

// currentIdentity returns the caller attached by the auth middleware. Routes
// that reach a handler without one are misconfigured; the caller gets a 401.
func currentIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, domain.Unauthorized("unauthorized")
	}
	return id, nil
}

// isStaff reports whether an authenticated caller is attached.
func isStaff(c echo.Context) bool {
	_, ok := middleware.IdentityFrom(c)
	return ok
}

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("body", "invalid request payload")
	}
	return c.Validate(req)
}
