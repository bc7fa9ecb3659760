package handler

import "github.com/orgprofile/cms-api/internal/core/domain"

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"omitempty,role"`
}

// refreshRequest is the body fallback for clients that cannot send the cookie.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

// loginResponse carries only the access token. The refresh token travels in
// the HttpOnly cookie.
type loginResponse struct {
	User        *domain.AuthUser `json:"user"`
	AccessToken string           `json:"accessToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type logoutAllResponse struct {
	Revoked int64 `json:"revoked"`
}
