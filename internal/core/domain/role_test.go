package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAllowed_Table(t *testing.T) {
	cases := []struct {
		perm Permission
		role Role
		want bool
	}{
		{PermArticlesWrite, RoleEditor, true},
		{PermArticlesWrite, RoleAdmin, true},
		{PermArticlesDelete, RoleEditor, false},
		{PermArticlesDelete, RoleAdmin, true},
		{PermUsersManage, RoleEditor, false},
		{PermMediaUpload, RoleEditor, true},
		{PermMediaDelete, RoleEditor, false},
		{Permission("unknown"), RoleAdmin, false},
		{PermArticlesRead, Role("GUEST"), false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.perm, tc.role); got != tc.want {
			t.Fatalf("Allowed(%s, %s) = %v, want %v", tc.perm, tc.role, got, tc.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("ADMIN"); !ok || r != RoleAdmin {
		t.Fatalf("expected ADMIN, got %q %v", r, ok)
	}
	if _, ok := ParseRole("admin"); ok {
		t.Fatalf("role parsing must be case-sensitive")
	}
}

func TestSession_Usable(t *testing.T) {
	now := time.Now()
	s := &Session{Status: SessionActive, ExpiresAt: now.Add(time.Minute)}
	if !s.Usable(now) {
		t.Fatalf("active unexpired session should be usable")
	}
	if s.Usable(now.Add(2 * time.Minute)) {
		t.Fatalf("expired session should not be usable")
	}
	s.Status = SessionRevoked
	if s.Usable(now) {
		t.Fatalf("revoked session should not be usable")
	}
}

func TestArticle_IsPubliclyVisible(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	a := &Article{Status: ArticlePublished, Visibility: VisibilityPublic}
	if !a.IsPubliclyVisible(now) {
		t.Fatalf("published public article should be visible")
	}
	a.PublishedAt = &future
	if a.IsPubliclyVisible(now) {
		t.Fatalf("scheduled article should not be visible yet")
	}
	a.PublishedAt = nil
	a.Visibility = VisibilityPrivate
	if a.IsPubliclyVisible(now) {
		t.Fatalf("private article should not be visible")
	}
}

func TestError_KindsAndDetails(t *testing.T) {
	err := Invalid("email", "email already registered")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation kind")
	}
	if got := err.Details["email"]; len(got) != 1 {
		t.Fatalf("unexpected details: %v", err.Details)
	}
	if !errors.Is(ErrCurrentPasswordMismatch, ErrInvalidCredentials) {
		t.Fatalf("current password mismatch must be an invalid-credentials failure")
	}
	if !errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Fatalf("user not found must unwrap to ErrNotFound")
	}
}
