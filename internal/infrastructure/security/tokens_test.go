package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

var testClaims = domain.TokenClaims{UserID: "u1", Email: "a@b.co", Role: domain.RoleEditor}

func TestTokenCodec_AccessRoundTrip(t *testing.T) {
	c := NewTokenCodec("secret", time.Minute, time.Hour)

	tok, err := c.IssueAccessToken(testClaims)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.UserID != "u1" || got.Email != "a@b.co" || got.Role != domain.RoleEditor {
		t.Fatalf("unexpected claims: %+v", got)
	}
	if got.IsRefresh() {
		t.Fatalf("access token must not be typed refresh")
	}
}

func TestTokenCodec_RefreshCarriesType(t *testing.T) {
	c := NewTokenCodec("secret", time.Minute, time.Hour)

	tok, err := c.IssueRefreshToken(testClaims)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !got.IsRefresh() {
		t.Fatalf("expected refresh type, got %q", got.Type)
	}
	if c.RefreshTTL() != time.Hour {
		t.Fatalf("unexpected refresh ttl %v", c.RefreshTTL())
	}
}

func TestTokenCodec_TokensAreUnique(t *testing.T) {
	c := NewTokenCodec("secret", time.Minute, time.Hour)
	a, _ := c.IssueRefreshToken(testClaims)
	b, _ := c.IssueRefreshToken(testClaims)
	if a == b {
		t.Fatalf("two refresh tokens for the same claims must differ")
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	c := NewTokenCodec("secret", time.Minute, time.Hour)
	tok, _ := c.IssueAccessToken(testClaims)

	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := c.Verify(tok); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_Invalid(t *testing.T) {
	c := NewTokenCodec("secret", time.Minute, time.Hour)
	other := NewTokenCodec("other", time.Minute, time.Hour)
	foreign, _ := other.IssueAccessToken(testClaims)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"garbage":   "not-a-token",
		"wrong key": foreign,
		"alg none":  unsigned,
		"empty":     "",
	} {
		if _, err := c.Verify(tok); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}
