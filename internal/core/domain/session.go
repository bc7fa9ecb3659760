package domain

import "time"

// SessionStatus is the lifecycle state of a refresh session.
// ACTIVE → REVOKED is the only transition; REVOKED is terminal.
type SessionStatus string

const (
	SessionActive  SessionStatus = "ACTIVE"
	SessionRevoked SessionStatus = "REVOKED"
)

// Session backs one refresh token. Token holds the raw refresh token only
// while it is being created; stores persist a hash of it.
type Session struct {
	ID        string
	Token     string
	UserID    string
	Status    SessionStatus
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Usable reports whether the session can still mint access tokens at now.
// Expiry is computed here, never stored as a status.
func (s *Session) Usable(now time.Time) bool {
	return s.Status == SessionActive && now.Before(s.ExpiresAt)
}

// ClientMeta is the request metadata captured when a session is created.
type ClientMeta struct {
	IP        string
	UserAgent string
}
