package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken returns the hex SHA-256 of a refresh token. Sessions are
// keyed by this value so raw tokens are never stored.
func HashRefreshToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
