package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// ArticleService implements the article workflow. Public callers only ever see
// published, public articles whose publish date has passed.
type ArticleService struct {
	repo   ports.ArticleRepository
	views  ports.ViewRecorder
	logger zerolog.Logger
	now    func() time.Time
}

func NewArticleService(repo ports.ArticleRepository, views ports.ViewRecorder, logger zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, views: views, logger: logger, now: time.Now}
}

func (s *ArticleService) List(ctx context.Context, in ports.ListArticlesInput, admin bool) (*ports.ArticlePage, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ArticleFilter{
		Search:   in.Search,
		AuthorID: in.AuthorID,
		Page:     page,
		Limit:    limit,
	}
	if admin {
		filter.Status = in.Status
		filter.Visibility = in.Visibility
	} else {
		filter.PublishedBefore = s.now().UTC()
	}

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		a.Content = ""
	}
	if articles == nil {
		articles = []*domain.Article{}
	}
	return &ports.ArticlePage{Articles: articles, Meta: pageMeta(page, limit, total)}, nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string, admin, countView bool) (*domain.Article, error) {
	a, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !admin && !a.IsPubliclyVisible(s.now()) {
		return nil, domain.ErrArticleNotFound
	}
	if countView && s.views != nil {
		s.views.Record(a.ID)
	}
	return a, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ArticleService) Create(ctx context.Context, in ports.CreateArticleInput, authorID string) (*domain.Article, error) {
	if err := s.ensureSlugFree(ctx, in.Slug, ""); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.ArticleDraft
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	now := s.now().UTC()
	a := &domain.Article{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		Excerpt:         optional(in.Excerpt),
		ThumbnailURL:    optional(in.ThumbnailURL),
		Status:          status,
		Visibility:      visibility,
		MetaTitle:       optional(in.MetaTitle),
		MetaDescription: optional(in.MetaDescription),
		PublishedAt:     in.PublishedAt,
		AuthorID:        authorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, slugTaken()
		}
		return nil, err
	}

	s.logger.Info().Str("article_id", a.ID).Str("slug", a.Slug).Str("author_id", authorID).Msg("article created")
	// Re-read so the author projection is populated.
	return s.repo.FindByID(ctx, a.ID)
}

func (s *ArticleService) Update(ctx context.Context, id string, in ports.UpdateArticleInput) (*domain.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Slug != nil && *in.Slug != a.Slug {
		if err := s.ensureSlugFree(ctx, *in.Slug, a.ID); err != nil {
			return nil, err
		}
		a.Slug = *in.Slug
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.Excerpt != nil {
		a.Excerpt = optional(*in.Excerpt)
	}
	if in.ThumbnailURL != nil {
		a.ThumbnailURL = optional(*in.ThumbnailURL)
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Visibility != nil {
		a.Visibility = *in.Visibility
	}
	if in.MetaTitle != nil {
		a.MetaTitle = optional(*in.MetaTitle)
	}
	if in.MetaDescription != nil {
		a.MetaDescription = optional(*in.MetaDescription)
	}
	if in.PublishedAt != nil {
		a.PublishedAt = in.PublishedAt
	}
	a.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, slugTaken()
		}
		return nil, err
	}
	s.logger.Info().Str("article_id", a.ID).Msg("article updated")
	return s.repo.FindByID(ctx, a.ID)
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("article_id", id).Msg("article deleted")
	return nil
}

func (s *ArticleService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return slugTaken()
	}
	return nil
}

func slugTaken() error {
	return domain.AlreadyExists("slug is already used").WithDetail("slug", "slug is already used by another article")
}

// optional maps "" to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
