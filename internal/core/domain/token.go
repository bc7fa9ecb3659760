package domain

// TokenTypeRefresh marks refresh tokens. Access tokens carry no type.
const TokenTypeRefresh = "refresh"

// TokenClaims is the identity bundle signed into access and refresh tokens.
type TokenClaims struct {
	UserID string
	Email  string
	Role   Role
	Type   string
}

func ClaimsFor(u *User) TokenClaims {
	return TokenClaims{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (c TokenClaims) IsRefresh() bool { return c.Type == TokenTypeRefresh }
