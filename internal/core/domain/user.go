package domain

import "time"

// User models a staff account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	IsActive     bool
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthUser is the projection returned by the auth endpoints.
type AuthUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      Role    `json:"role"`
	AvatarURL *string `json:"avatarUrl"`
}

// PublicUser is the projection returned by the user management endpoints.
// It never carries the password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	AvatarURL *string   `json:"avatarUrl"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Auth() *AuthUser {
	return &AuthUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, AvatarURL: u.AvatarURL}
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
