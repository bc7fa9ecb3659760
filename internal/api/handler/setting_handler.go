package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

type SettingHandler struct {
	service ports.SettingService
}

func NewSettingHandler(service ports.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// ListPublic returns the settings flagged public.
//
// @Summary      List public settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Success{data=[]domain.Setting}
// @Router       /settings/public [get]
func (h *SettingHandler) ListPublic(c echo.Context) error {
	settings, err := h.service.GetAll(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "settings retrieved", settings)
}

// ListAll returns every setting.
//
// @Summary      List all settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Success{data=[]domain.Setting}
// @Failure      403  {object}  response.Failure
// @Router       /settings [get]
func (h *SettingHandler) ListAll(c echo.Context) error {
	settings, err := h.service.GetAll(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "settings retrieved", settings)
}

// Update changes the value of an existing setting.
//
// @Summary      Update setting
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string                true  "Setting key"
// @Param        body  body      updateSettingRequest  true  "New value"
// @Success      200   {object}  response.Success{data=domain.Setting}
// @Failure      400   {object}  response.Failure
// @Failure      404   {object}  response.Failure
// @Router       /settings/{key} [patch]
func (h *SettingHandler) Update(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req updateSettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.Update(c.Request().Context(), c.Param("key"), req.Value, id.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "setting updated", s)
}

// UpdateBulk upserts several settings at once. Keys that do not exist yet are
// created as public settings.
//
// @Summary      Update settings in bulk
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkSettingsRequest  true  "Key/value pairs"
// @Success      200   {object}  response.Success{data=[]domain.Setting}
// @Failure      400   {object}  response.Failure
// @Router       /settings [patch]
func (h *SettingHandler) UpdateBulk(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req bulkSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	settings, err := h.service.UpdateBulk(c.Request().Context(), req.Settings, id.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "settings updated", settings)
}
