package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/orgprofile/cms-api/internal/api/handler"
	"github.com/orgprofile/cms-api/internal/api/middleware"
	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// Options holds the HTTP-level settings of the router.
type Options struct {
	Development    bool
	SecureCookies  bool
	CORSOrigin     string
	BodyLimit      string
	RefreshTTL     time.Duration
	RateLimitStore ports.RateLimitStore
	RateWindow     time.Duration
	RateMax        int64
	AuthRateMax    int64
	// Checks are the readiness probes served at /health/ready.
	Checks map[string]handler.Check
	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registry, which /metrics serves.
	Registerer prometheus.Registerer
}

// Services are the use cases the handlers call.
type Services struct {
	Auth          ports.AuthService
	Authenticator ports.Authenticator
	Users         ports.UserService
	Articles      ports.ArticleService
	Settings      ports.SettingService
	Media         ports.MediaService
	Dashboard     ports.DashboardService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options, svc Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, opts.Development)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{opts.CORSOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
	}))
	e.Use(echomiddleware.Gzip())
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "cms",
		Registerer: reg,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", middleware.RateLimit(opts.RateLimitStore, middleware.RateLimitConfig{
		Name:    "api",
		Max:     opts.RateMax,
		Window:  opts.RateWindow,
		Code:    response.CodeRateLimit,
		Message: "too many requests, please try again later",
	}, log))

	authn := middleware.Authenticate(svc.Authenticator)
	allow := middleware.RequirePermission

	// --- Auth ---
	authHandler := handler.NewAuthHandler(svc.Auth, handler.CookieConfig{Secure: opts.SecureCookies, MaxAge: opts.RefreshTTL})
	loginLimiter := middleware.RateLimit(opts.RateLimitStore, middleware.RateLimitConfig{
		Name:    "auth",
		Max:     opts.AuthRateMax,
		Window:  opts.RateWindow,
		Code:    response.CodeAuthRateLimit,
		Message: "too many login attempts, please try again later",
	}, log)

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login, loginLimiter)
	auth.POST("/register", authHandler.Register)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authn)
	auth.POST("/logout-all", authHandler.LogoutAll, authn)
	auth.GET("/me", authHandler.Me, authn)
	auth.POST("/change-password", authHandler.ChangePassword, authn)

	// --- Articles ---
	articleHandler := handler.NewArticleHandler(svc.Articles)
	articles := v1.Group("/articles")
	articles.GET("/public", articleHandler.ListPublic)
	articles.GET("/public/:slug", articleHandler.GetPublicBySlug, middleware.OptionalAuth(svc.Authenticator))
	articles.GET("", articleHandler.ListAll, authn, allow(domain.PermArticlesRead))
	articles.GET("/slug/:slug", articleHandler.GetBySlug, authn, allow(domain.PermArticlesRead))
	articles.GET("/:id", articleHandler.GetByID, authn, allow(domain.PermArticlesRead))
	articles.POST("", articleHandler.Create, authn, allow(domain.PermArticlesWrite))
	articles.PATCH("/:id", articleHandler.Update, authn, allow(domain.PermArticlesWrite))
	articles.DELETE("/:id", articleHandler.Delete, authn, allow(domain.PermArticlesDelete))

	// --- Settings ---
	settingHandler := handler.NewSettingHandler(svc.Settings)
	settings := v1.Group("/settings")
	settings.GET("/public", settingHandler.ListPublic)
	settings.GET("", settingHandler.ListAll, authn, allow(domain.PermSettingsManage))
	settings.PATCH("", settingHandler.UpdateBulk, authn, allow(domain.PermSettingsManage))
	settings.PATCH("/:key", settingHandler.Update, authn, allow(domain.PermSettingsManage))

	// --- Users ---
	userHandler := handler.NewUserHandler(svc.Users)
	users := v1.Group("/users", authn, allow(domain.PermUsersManage))
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PATCH("/:id", userHandler.Update)
	users.PATCH("/:id/status", userHandler.SetStatus)
	users.DELETE("/:id", userHandler.Delete)

	// --- Admin ---
	adminHandler := handler.NewAdminHandler(svc.Dashboard, svc.Users, svc.Settings)
	admin := v1.Group("/admin", authn, allow(domain.PermAdminDashboard))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
	admin.GET("/settings", adminHandler.Settings)
	admin.PATCH("/settings/:key", adminHandler.UpsertSetting)

	// --- Uploads ---
	uploadHandler := handler.NewUploadHandler(svc.Media)
	upload := v1.Group("/upload", authn)
	upload.POST("/image", uploadHandler.UploadImage, allow(domain.PermMediaUpload))
	upload.POST("/thumbnail", uploadHandler.UploadThumbnail, allow(domain.PermMediaUpload))
	upload.POST("/settings", uploadHandler.UploadSettingImage, allow(domain.PermMediaSettings))
	upload.DELETE("/image/*", uploadHandler.DeleteImage, allow(domain.PermMediaDelete))

	return e
}
