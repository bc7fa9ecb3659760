package handler

import (
	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

type listUsersQuery struct {
	Role     string `query:"role"     json:"role"     validate:"omitempty,role"`
	IsActive string `query:"isActive" json:"isActive" validate:"omitempty,oneof=true false"`
	Search   string `query:"search"`
}

func (q listUsersQuery) toFilter() ports.UserFilter {
	f := ports.UserFilter{Role: domain.Role(q.Role), Search: q.Search}
	if q.IsActive != "" {
		active := q.IsActive == "true"
		f.IsActive = &active
	}
	return f
}

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required,min=2"`
	Role     string `json:"role"     validate:"omitempty,role"`
}

type updateUserRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Name     *string `json:"name"     validate:"omitempty,min=2"`
	Role     *string `json:"role"     validate:"omitempty,role"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	in := ports.UpdateUserInput{Email: r.Email, Name: r.Name, Password: r.Password}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		in.Role = &role
	}
	return in
}

type updateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type pageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}
