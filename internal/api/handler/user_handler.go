package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// UserHandler serves the admin user management endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns users, optionally filtered.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role      query     string  false  "ADMIN or EDITOR"
// @Param        isActive  query     string  false  "true or false"
// @Param        search    query     string  false  "Case-insensitive match on name or email"
// @Success      200       {object}  response.Success{data=[]domain.PublicUser}
// @Failure      400       {object}  response.Failure
// @Failure      403       {object}  response.Failure
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	users, err := h.service.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "users retrieved", users)
}

// Get returns one user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response.Success{data=domain.PublicUser}
// @Failure      404  {object}  response.Failure
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "user retrieved", user)
}

// Create adds a staff account.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  response.Success{data=domain.PublicUser}
// @Failure      400   {object}  response.Failure
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "user created", user)
}

// Update applies a partial update.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  response.Success{data=domain.PublicUser}
// @Failure      400   {object}  response.Failure
// @Failure      404   {object}  response.Failure
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "user updated", user)
}

// SetStatus activates or deactivates a user. Deactivated users can no longer
// authenticate, even with an unexpired access token.
//
// @Summary      Set user status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  response.Success{data=domain.PublicUser}
// @Failure      400   {object}  response.Failure
// @Failure      404   {object}  response.Failure
// @Router       /users/{id}/status [patch]
func (h *UserHandler) SetStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "user status updated", user)
}

// Delete removes a user. Admins cannot delete themselves.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response.Success
// @Failure      400  {object}  response.Failure
// @Failure      404  {object}  response.Failure
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), id.UserID); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "user deleted", nil)
}
