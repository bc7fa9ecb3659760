package ports

import (
	"context"
	"time"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// ArticleFilter carries all query parameters for listing articles.
type ArticleFilter struct {
	// PublishedBefore, when non-zero, restricts results to PUBLISHED + PUBLIC
	// articles whose publish date is not after it (public listing).
	PublishedBefore time.Time
	Status          domain.ArticleStatus // optional
	Visibility      domain.ArticleVisibility
	Search          string // case-insensitive match on title or content
	AuthorID        string
	Page            int // 1-based
	Limit           int
}

// ArticleRepository defines persistence operations for articles. Reads
// populate Article.Author from the author's user record.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) error
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	// List returns a page of articles (publish date desc) and the total count.
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int64, error)
	Update(ctx context.Context, a *domain.Article) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string, n int64) error
	Stats(ctx context.Context) (*domain.ArticleStats, error)
	Recent(ctx context.Context, n int) ([]*domain.Article, error)
	// CountByAuthors returns the number of articles per author id.
	CountByAuthors(ctx context.Context, authorIDs []string) (map[string]int64, error)
}
