package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/metrics"
	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookiePath = "/api/v1/auth"
)

// CookieConfig controls the refresh token cookie. MaxAge should equal the
// refresh token lifetime.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login authenticates a user, opens a refresh session and returns an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Success{data=loginResponse}
// @Failure      400   {object}  response.Failure
// @Failure      401   {object}  response.Failure
// @Failure      429   {object}  response.Failure
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meta := domain.ClientMeta{IP: c.RealIP(), UserAgent: c.Request().UserAgent()}
	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, meta)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setRefreshCookie(c, res.RefreshToken)
	return response.OK(c, http.StatusOK, "login successful", loginResponse{
		User:        res.User,
		AccessToken: res.AccessToken,
	})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  response.Success{data=domain.AuthUser}
// @Failure      400   {object}  response.Failure
// @Failure      409   {object}  response.Failure
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "registration successful", user)
}

// Refresh issues a new access token from the refresh cookie, or from the
// request body when no cookie is sent. The refresh token is not rotated.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (cookie takes precedence)"
// @Success      200   {object}  response.Success{data=refreshResponse}
// @Failure      401   {object}  response.Failure
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.refreshToken(c)
	if token == "" {
		metrics.RefreshesTotal.WithLabelValues("expired").Inc()
		return domain.NewError(domain.ErrTokenExpired, "refresh token not found")
	}

	access, err := h.authService.RefreshAccessToken(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.RefreshesTotal.WithLabelValues("expired").Inc()
		case errors.Is(err, domain.ErrUnauthorized):
			metrics.RefreshesTotal.WithLabelValues("unauthorized").Inc()
		default:
			metrics.RefreshesTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	return response.OK(c, http.StatusOK, "token refreshed", refreshResponse{AccessToken: access})
}

// Logout revokes the session behind the presented refresh token and clears
// the cookie. Logging out twice is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Success
// @Failure      401  {object}  response.Failure
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.refreshToken(c); token != "" {
		n, err := h.authService.Logout(c.Request().Context(), token)
		if err != nil {
			return err
		}
		metrics.SessionsRevokedTotal.Add(float64(n))
	}
	h.clearRefreshCookie(c)
	return response.OK(c, http.StatusOK, "logout successful", nil)
}

// LogoutAll revokes every active session of the caller.
//
// @Summary      Logout from all sessions
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Success{data=logoutAllResponse}
// @Failure      401  {object}  response.Failure
// @Router       /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.authService.LogoutAll(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Add(float64(n))
	h.clearRefreshCookie(c)
	return response.OK(c, http.StatusOK, "all sessions revoked", logoutAllResponse{Revoked: n})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Success{data=domain.AuthUser}
// @Failure      401  {object}  response.Failure
// @Failure      404  {object}  response.Failure
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.GetCurrentUser(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "user retrieved", user)
}

// ChangePassword replaces the caller's password. Existing sessions stay valid.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  response.Success
// @Failure      400   {object}  response.Failure
// @Failure      401   {object}  response.Failure
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.Request().Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "password changed", nil)
}

// refreshToken reads the refresh cookie, falling back to the JSON body.
func (h *AuthHandler) refreshToken(c echo.Context) string {
	if ck, err := c.Cookie(refreshCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	if c.Request().ContentLength == 0 {
		return ""
	}
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
