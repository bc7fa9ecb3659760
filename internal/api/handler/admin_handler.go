package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// AdminHandler serves the admin panel endpoints. Every route requires ADMIN.
type AdminHandler struct {
	dashboard ports.DashboardService
	users     ports.UserService
	settings  ports.SettingService
}

func NewAdminHandler(dashboard ports.DashboardService, users ports.UserService, settings ports.SettingService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, users: users, settings: settings}
}

// Dashboard returns article and user counts plus the five newest articles.
//
// @Summary      Dashboard stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Success{data=ports.Dashboard}
// @Failure      403  {object}  response.Failure
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.dashboard.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "dashboard stats retrieved", d)
}

// Users returns a page of users with their article counts.
//
// @Summary      List users (paginated)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  response.Success{data=[]ports.UserSummary}
// @Failure      403    {object}  response.Failure
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	var q pageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	users, meta, err := h.users.ListPage(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return err
	}
	return response.Paged(c, http.StatusOK, "users retrieved", users, toMeta(meta))
}

// SetUserStatus activates or deactivates a user.
//
// @Summary      Set user status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  response.Success{data=domain.PublicUser}
// @Failure      400   {object}  response.Failure
// @Failure      404   {object}  response.Failure
// @Router       /admin/users/{id}/status [patch]
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.SetStatus(c.Request().Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "user status updated", user)
}

// Settings returns every setting.
//
// @Summary      List settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Success{data=[]domain.Setting}
// @Router       /admin/settings [get]
func (h *AdminHandler) Settings(c echo.Context) error {
	settings, err := h.settings.GetAll(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "settings retrieved", settings)
}

// UpsertSetting sets a value, creating a private setting when the key is new.
//
// @Summary      Upsert setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string                true  "Setting key"
// @Param        body  body      updateSettingRequest  true  "New value"
// @Success      200   {object}  response.Success{data=domain.Setting}
// @Failure      400   {object}  response.Failure
// @Router       /admin/settings/{key} [patch]
func (h *AdminHandler) UpsertSetting(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req updateSettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.settings.Upsert(c.Request().Context(), c.Param("key"), req.Value, id.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "setting updated", s)
}
