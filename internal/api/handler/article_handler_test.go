package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

const longContent = "This article body is comfortably longer than fifty characters in total."

func TestArticleHandler_GetPublicBySlug_CountsAnonymousViews(t *testing.T) {
	var counted []bool
	stub := &stubArticleService{
		getBySlugFn: func(_ context.Context, slug string, admin, countView bool) (*domain.Article, error) {
			if slug != "hello-world" || admin {
				t.Fatalf("unexpected args: %s admin=%v", slug, admin)
			}
			counted = append(counted, countView)
			return &domain.Article{ID: "a1", Slug: slug}, nil
		},
	}
	handler := NewArticleHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/v1/articles/public/hello-world", nil)
	c.SetParamNames("slug")
	c.SetParamValues("hello-world")
	if err := handler.GetPublicBySlug(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d / %v", rec.Code, err)
	}

	c, _ = newTestContext(http.MethodGet, "/api/v1/articles/public/hello-world", nil)
	c.SetParamNames("slug")
	c.SetParamValues("hello-world")
	withIdentity(c, "u1", domain.RoleEditor)
	if err := handler.GetPublicBySlug(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if len(counted) != 2 || !counted[0] || counted[1] {
		t.Fatalf("expected anonymous view counted and staff view skipped, got %v", counted)
	}
}

func TestArticleHandler_ListPublic_PaginatesWithMeta(t *testing.T) {
	stub := &stubArticleService{
		listFn: func(_ context.Context, in ports.ListArticlesInput, admin bool) (*ports.ArticlePage, error) {
			if admin || in.Page != 2 || in.Limit != 5 || in.Search != "news" {
				t.Fatalf("unexpected input: %+v admin=%v", in, admin)
			}
			return &ports.ArticlePage{
				Articles: []*domain.Article{{ID: "a1"}},
				Meta:     ports.PageMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2},
			}, nil
		},
	}
	handler := NewArticleHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/v1/articles/public?page=2&limit=5&search=news", nil)
	if err := handler.ListPublic(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"totalPages":2`) || !strings.Contains(body, `"id":"a1"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestArticleHandler_ListAll_RejectsUnknownStatus(t *testing.T) {
	handler := NewArticleHandler(&stubArticleService{})

	c, _ := newTestContext(http.MethodGet, "/api/v1/articles?status=LIVE", nil)
	err := handler.ListAll(c)
	var de *domain.Error
	if !errors.As(err, &de) || len(de.Details["status"]) == 0 {
		t.Fatalf("expected status detail, got %v", err)
	}
}

func TestArticleHandler_Create(t *testing.T) {
	stub := &stubArticleService{
		createFn: func(_ context.Context, in ports.CreateArticleInput, authorID string) (*domain.Article, error) {
			if authorID != "u1" || in.Slug != "hello-world" || in.PublishedAt == nil {
				t.Fatalf("unexpected input: %+v author=%s", in, authorID)
			}
			return &domain.Article{ID: "a1", Slug: in.Slug, Title: in.Title}, nil
		},
	}
	handler := NewArticleHandler(stub)

	body := `{"title":"Hello world","slug":"hello-world","content":"` + longContent + `","publishedAt":"2024-05-01T10:00:00Z","thumbnailUrl":""}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/articles", strings.NewReader(body))
	withIdentity(c, "u1", domain.RoleEditor)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestArticleHandler_Create_ValidationDetails(t *testing.T) {
	stub := &stubArticleService{
		createFn: func(context.Context, ports.CreateArticleInput, string) (*domain.Article, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewArticleHandler(stub)

	body := `{"title":"Hi","slug":"Not A Slug","content":"short","thumbnailUrl":"nope"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/articles", strings.NewReader(body))
	withIdentity(c, "u1", domain.RoleEditor)

	err := handler.Create(c)
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected domain error, got %v", err)
	}
	for _, field := range []string{"title", "slug", "content", "thumbnailUrl"} {
		if len(de.Details[field]) == 0 {
			t.Fatalf("expected detail for %s, got %+v", field, de.Details)
		}
	}
}

func TestArticleHandler_Update_Partial(t *testing.T) {
	stub := &stubArticleService{
		updateFn: func(_ context.Context, id string, in ports.UpdateArticleInput) (*domain.Article, error) {
			if id != "a1" {
				t.Fatalf("unexpected id %s", id)
			}
			if in.Status == nil || *in.Status != domain.ArticlePublished {
				t.Fatalf("expected status to be set")
			}
			if in.Title != nil || in.Content != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			return &domain.Article{ID: id, Status: *in.Status}, nil
		},
	}
	handler := NewArticleHandler(stub)

	c, rec := newTestContext(http.MethodPatch, "/api/v1/articles/a1", strings.NewReader(`{"status":"PUBLISHED"}`))
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := handler.Update(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d / %v", rec.Code, err)
	}
}
