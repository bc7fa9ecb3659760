package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

func TestAuthorize_Allows(t *testing.T) {
	c, rec := newCtx("")
	SetIdentity(c, &domain.Identity{UserID: "u1", Role: domain.RoleAdmin})

	called := false
	handler := Authorize(domain.RoleAdmin, domain.RoleEditor)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_Forbids(t *testing.T) {
	c, _ := newCtx("")
	SetIdentity(c, &domain.Identity{UserID: "u1", Role: domain.RoleEditor})

	handler := Authorize(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthorize_MissingIdentity(t *testing.T) {
	c, _ := newCtx("")
	handler := Authorize(domain.RoleAdmin, domain.RoleEditor)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequirePermission_FollowsTable(t *testing.T) {
	for perm, roles := range domain.Permissions {
		for _, role := range domain.Roles {
			c, _ := newCtx("")
			SetIdentity(c, &domain.Identity{UserID: "u", Role: role})
			err := RequirePermission(perm)(func(echo.Context) error { return nil })(c)
			allowed := domain.Allowed(perm, role)
			if allowed && err != nil {
				t.Fatalf("%s/%s: expected allowed (roles %v), got %v", perm, role, roles, err)
			}
			if !allowed && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("%s/%s: expected forbidden, got %v", perm, role, err)
			}
		}
	}
}
