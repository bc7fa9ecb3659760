package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/middleware"
	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// newTestContext returns a context wired with the package validator.
func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, userID string, role domain.Role) {
	middleware.SetIdentity(c, &domain.Identity{UserID: userID, Email: userID + "@example.com", Role: role})
}

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string, meta domain.ClientMeta) (*ports.LoginResult, error)
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.AuthUser, error)
	refreshFn        func(ctx context.Context, token string) (string, error)
	logoutFn         func(ctx context.Context, token string) (int64, error)
	logoutAllFn      func(ctx context.Context, userID string) (int64, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
	currentUserFn    func(ctx context.Context, userID string) (*domain.AuthUser, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string, meta domain.ClientMeta) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password, meta)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthUser, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) RefreshAccessToken(ctx context.Context, token string) (string, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) (int64, error) {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	return s.logoutAllFn(ctx, userID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

func (s *stubAuthService) GetCurrentUser(ctx context.Context, userID string) (*domain.AuthUser, error) {
	return s.currentUserFn(ctx, userID)
}

type stubArticleService struct {
	listFn      func(ctx context.Context, in ports.ListArticlesInput, admin bool) (*ports.ArticlePage, error)
	getBySlugFn func(ctx context.Context, slug string, admin, countView bool) (*domain.Article, error)
	createFn    func(ctx context.Context, in ports.CreateArticleInput, authorID string) (*domain.Article, error)
	updateFn    func(ctx context.Context, id string, in ports.UpdateArticleInput) (*domain.Article, error)
}

func (s *stubArticleService) List(ctx context.Context, in ports.ListArticlesInput, admin bool) (*ports.ArticlePage, error) {
	return s.listFn(ctx, in, admin)
}

func (s *stubArticleService) GetBySlug(ctx context.Context, slug string, admin, countView bool) (*domain.Article, error) {
	return s.getBySlugFn(ctx, slug, admin, countView)
}

func (s *stubArticleService) GetByID(context.Context, string) (*domain.Article, error) {
	return nil, domain.ErrArticleNotFound
}

func (s *stubArticleService) Create(ctx context.Context, in ports.CreateArticleInput, authorID string) (*domain.Article, error) {
	return s.createFn(ctx, in, authorID)
}

func (s *stubArticleService) Update(ctx context.Context, id string, in ports.UpdateArticleInput) (*domain.Article, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubArticleService) Delete(context.Context, string) error { return nil }

type stubMediaService struct {
	uploadFn func(ctx context.Context, kind domain.MediaKind, filename string, data []byte) (*domain.UploadedImage, error)
	deleted  string
}

func (s *stubMediaService) Upload(ctx context.Context, kind domain.MediaKind, filename string, data []byte) (*domain.UploadedImage, error) {
	return s.uploadFn(ctx, kind, filename, data)
}

func (s *stubMediaService) Delete(_ context.Context, publicID string) error {
	s.deleted = publicID
	return nil
}
