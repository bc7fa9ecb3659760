package ports

import (
	"context"
	"time"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// ListArticlesInput carries the parameters of the list endpoints.
type ListArticlesInput struct {
	Page       int
	Limit      int
	Status     domain.ArticleStatus
	Visibility domain.ArticleVisibility
	Search     string
	AuthorID   string
}

// ArticlePage is a page of articles plus pagination metadata.
type ArticlePage struct {
	Articles []*domain.Article `json:"articles"`
	Meta     PageMeta          `json:"meta"`
}

// PageMeta is the pagination block shared by list responses.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// CreateArticleInput holds a new article. Empty optional strings are stored as absent.
type CreateArticleInput struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	ThumbnailURL    string
	Status          domain.ArticleStatus
	Visibility      domain.ArticleVisibility
	MetaTitle       string
	MetaDescription string
	PublishedAt     *time.Time
}

// UpdateArticleInput is a partial update; nil fields are left untouched.
type UpdateArticleInput struct {
	Title           *string
	Slug            *string
	Content         *string
	Excerpt         *string
	ThumbnailURL    *string
	Status          *domain.ArticleStatus
	Visibility      *domain.ArticleVisibility
	MetaTitle       *string
	MetaDescription *string
	PublishedAt     *time.Time
}

type ArticleService interface {
	List(ctx context.Context, in ListArticlesInput, admin bool) (*ArticlePage, error)
	// GetBySlug hides non-public articles from non-admin callers. countView
	// records a view for the returned article.
	GetBySlug(ctx context.Context, slug string, admin, countView bool) (*domain.Article, error)
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, in CreateArticleInput, authorID string) (*domain.Article, error)
	Update(ctx context.Context, id string, in UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}

// ViewRecorder counts article views out of band.
type ViewRecorder interface {
	Record(articleID string)
}
