package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

type stubAuthenticator struct {
	identities map[string]*domain.Identity
	errs       map[string]error
	calls      int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	s.calls++
	if err, ok := s.errs[token]; ok {
		return nil, err
	}
	if id, ok := s.identities[token]; ok {
		return id, nil
	}
	return nil, domain.Unauthorized("invalid token")
}

func newStubAuthenticator() *stubAuthenticator {
	return &stubAuthenticator{
		identities: map[string]*domain.Identity{
			"good": {UserID: "u1", Email: "a@example.com", Role: domain.RoleEditor},
		},
		errs: map[string]error{
			"expired": domain.NewError(domain.ErrTokenExpired, "token has expired"),
		},
	}
}

func newCtx(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	c, rec := newCtx("Bearer good")

	called := false
	handler := Authenticate(newStubAuthenticator())(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok || id.UserID != "u1" || id.Role != domain.RoleEditor {
			t.Fatalf("identity not attached: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrUnauthorized},
		{"wrong scheme", "Token good", domain.ErrUnauthorized},
		{"empty token", "Bearer ", domain.ErrUnauthorized},
		{"unknown token", "Bearer nope", domain.ErrUnauthorized},
		{"expired token", "Bearer expired", domain.ErrTokenExpired},
	}
	for _, tc := range cases {
		c, _ := newCtx(tc.header)
		handler := Authenticate(newStubAuthenticator())(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", tc.name)
			return nil
		})
		if err := handler(c); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestOptionalAuth_NeverFails(t *testing.T) {
	for _, header := range []string{"", "Bearer nope", "Bearer expired", "Basic xyz"} {
		c, rec := newCtx(header)
		handler := OptionalAuth(newStubAuthenticator())(func(c echo.Context) error {
			if _, ok := IdentityFrom(c); ok {
				t.Fatalf("%q: identity must not be attached", header)
			}
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil || rec.Code != http.StatusOK {
			t.Fatalf("%q: expected pass-through, got %v / %d", header, err, rec.Code)
		}
	}

	c, _ := newCtx("Bearer good")
	handler := OptionalAuth(newStubAuthenticator())(func(c echo.Context) error {
		if id, ok := IdentityFrom(c); !ok || id.UserID != "u1" {
			t.Fatalf("identity not attached for valid token")
		}
		return nil
	})
	_ = handler(c)
}
