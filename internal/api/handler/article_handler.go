package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// ListPublic returns published, public articles whose publish time has passed.
//
// @Summary      List public articles
// @Tags         articles
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        search  query     string  false  "Case-insensitive match on title or content"
// @Param        authorId query    string  false  "Author id"
// @Success      200     {object}  response.Success{data=[]domain.Article}
// @Failure      400     {object}  response.Failure
// @Router       /articles/public [get]
func (h *ArticleHandler) ListPublic(c echo.Context) error {
	return h.list(c, false)
}

// ListAll returns articles in every state, filterable by status and visibility.
//
// @Summary      List articles (staff)
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 10, max 100)"
// @Param        status      query     string  false  "DRAFT, PUBLISHED or ARCHIVED"
// @Param        visibility  query     string  false  "PUBLIC or PRIVATE"
// @Param        search      query     string  false  "Case-insensitive match on title or content"
// @Param        authorId    query     string  false  "Author id"
// @Success      200         {object}  response.Success{data=[]domain.Article}
// @Failure      400         {object}  response.Failure
// @Failure      401         {object}  response.Failure
// @Failure      403         {object}  response.Failure
// @Router       /articles [get]
func (h *ArticleHandler) ListAll(c echo.Context) error {
	return h.list(c, true)
}

func (h *ArticleHandler) list(c echo.Context, admin bool) error {
	var q listArticlesQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), q.toInput(), admin)
	if err != nil {
		return err
	}
	return response.Paged(c, http.StatusOK, "articles retrieved", page.Articles, toMeta(page.Meta))
}

// GetPublicBySlug returns one publicly visible article. Anonymous reads are
// counted as views; reads by signed-in staff are not.
//
// @Summary      Get public article by slug
// @Tags         articles
// @Produce      json
// @Param        slug  path      string  true  "Article slug"
// @Success      200   {object}  response.Success{data=domain.Article}
// @Failure      404   {object}  response.Failure
// @Router       /articles/public/{slug} [get]
func (h *ArticleHandler) GetPublicBySlug(c echo.Context) error {
	a, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"), false, !isStaff(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "article retrieved", a)
}

// GetBySlug returns an article by slug regardless of its state.
//
// @Summary      Get article by slug (staff)
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Article slug"
// @Success      200   {object}  response.Success{data=domain.Article}
// @Failure      404   {object}  response.Failure
// @Router       /articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(c echo.Context) error {
	a, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"), true, false)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "article retrieved", a)
}

// GetByID returns an article by id.
//
// @Summary      Get article by id (staff)
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  response.Success{data=domain.Article}
// @Failure      404  {object}  response.Failure
// @Router       /articles/{id} [get]
func (h *ArticleHandler) GetByID(c echo.Context) error {
	a, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "article retrieved", a)
}

// Create stores a new article authored by the caller.
//
// @Summary      Create article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article"
// @Success      201   {object}  response.Success{data=domain.Article}
// @Failure      400   {object}  response.Failure
// @Failure      409   {object}  response.Failure
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req createArticleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.service.Create(c.Request().Context(), req.toInput(), id.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "article created", a)
}

// Update applies a partial update.
//
// @Summary      Update article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article id"
// @Param        body  body      updateArticleRequest  true  "Fields to change"
// @Success      200   {object}  response.Success{data=domain.Article}
// @Failure      400   {object}  response.Failure
// @Failure      404   {object}  response.Failure
// @Failure      409   {object}  response.Failure
// @Router       /articles/{id} [patch]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req updateArticleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "article updated", a)
}

// Delete removes an article.
//
// @Summary      Delete article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  response.Success
// @Failure      403  {object}  response.Failure
// @Failure      404  {object}  response.Failure
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "article deleted", nil)
}

func toMeta(m ports.PageMeta) response.Meta {
	return response.Meta{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPages: m.TotalPages}
}
