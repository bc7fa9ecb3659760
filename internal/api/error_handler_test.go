package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/domain"
)

func render(t *testing.T, dev bool, err error) (*httptest.ResponseRecorder, response.Failure) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), dev)(err, c)

	var body response.Failure
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("decode body: %v (%s)", jerr, rec.Body.String())
	}
	return rec, body
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid credentials", domain.InvalidCredentials(), http.StatusUnauthorized, response.CodeInvalidCredentials},
		{"password mismatch", &domain.Error{Kind: domain.ErrCurrentPasswordMismatch, Message: "current password is incorrect"}, http.StatusBadRequest, response.CodeInvalidCredentials},
		{"token expired", domain.NewError(domain.ErrTokenExpired, "token has expired"), http.StatusUnauthorized, response.CodeTokenExpired},
		{"token invalid", domain.NewError(domain.ErrTokenInvalid, "bad token"), http.StatusUnauthorized, response.CodeUnauthorized},
		{"unauthorized", domain.Unauthorized("no"), http.StatusUnauthorized, response.CodeUnauthorized},
		{"forbidden", domain.Forbidden("no"), http.StatusForbidden, response.CodeForbidden},
		{"validation", domain.Invalid("email", "is required"), http.StatusBadRequest, response.CodeValidation},
		{"not found", domain.ErrArticleNotFound, http.StatusNotFound, response.CodeNotFound},
		{"conflict", domain.AlreadyExists("dup"), http.StatusConflict, response.CodeAlreadyExists},
		{"database", fmt.Errorf("users.find: %w: %w", domain.ErrDatabase, errors.New("boom")), http.StatusInternalServerError, response.CodeDatabase},
		{"external", domain.NewError(domain.ErrExternalService, "cloudinary down"), http.StatusInternalServerError, response.CodeExternalService},
		{"unknown", errors.New("kaboom"), http.StatusInternalServerError, response.CodeInternal},
	}
	for _, tc := range cases {
		rec, body := render(t, false, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, rec.Code)
		}
		if body.Success || body.Error.Code != tc.code {
			t.Fatalf("%s: expected code %s, got %+v", tc.name, tc.code, body)
		}
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	err := domain.Invalid("email", "is required").WithDetail("password", "is too short")
	_, body := render(t, false, err)
	if len(body.Error.Details["email"]) != 1 || len(body.Error.Details["password"]) != 1 {
		t.Fatalf("expected field details, got %+v", body.Error.Details)
	}
}

func TestErrorHandler_HidesInternalsOutsideDev(t *testing.T) {
	err := fmt.Errorf("users.find: %w: %w", domain.ErrDatabase, errors.New("connection refused"))

	_, body := render(t, false, err)
	if body.Message != "database error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}

	_, body = render(t, true, err)
	if body.Message != err.Error() {
		t.Fatalf("expected raw message in dev, got %q", body.Message)
	}
}

func TestErrorHandler_EchoErrors(t *testing.T) {
	rec, body := render(t, false, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound || body.Error.Code != response.CodeNotFound || body.Message != "endpoint not found" {
		t.Fatalf("unexpected 404 rendering: %d %+v", rec.Code, body)
	}

	rec, body = render(t, false, echo.NewHTTPError(http.StatusRequestEntityTooLarge))
	if rec.Code != http.StatusRequestEntityTooLarge || body.Error.Code != response.CodeValidation {
		t.Fatalf("unexpected 413 rendering: %d %+v", rec.Code, body)
	}
}

func TestErrorHandler_IdenticalLoginFailures(t *testing.T) {
	a, _ := render(t, false, domain.InvalidCredentials())
	b, _ := render(t, false, domain.InvalidCredentials())
	if a.Body.String() != b.Body.String() {
		t.Fatalf("login failures differ:\n%s\n%s", a.Body.String(), b.Body.String())
	}
}
