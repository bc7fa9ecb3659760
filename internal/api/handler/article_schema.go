package handler

import (
	"time"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

type listArticlesQuery struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Status     string `query:"status"     json:"status"     validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Visibility string `query:"visibility" json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	Search     string `query:"search"`
	AuthorID   string `query:"authorId"   json:"authorId"   validate:"omitempty,uuid"`
}

func (q listArticlesQuery) toInput() ports.ListArticlesInput {
	return ports.ListArticlesInput{
		Page:       q.Page,
		Limit:      q.Limit,
		Status:     domain.ArticleStatus(q.Status),
		Visibility: domain.ArticleVisibility(q.Visibility),
		Search:     q.Search,
		AuthorID:   q.AuthorID,
	}
}

// PublishedAt is a string so an empty value is accepted and means "unset".
type createArticleRequest struct {
	Title           string `json:"title"           validate:"required,min=5,max=200"`
	Slug            string `json:"slug"            validate:"required,min=3,max=200,slug"`
	Content         string `json:"content"         validate:"required,min=50"`
	Excerpt         string `json:"excerpt"         validate:"max=500"`
	ThumbnailURL    string `json:"thumbnailUrl"    validate:"urlorempty"`
	Status          string `json:"status"          validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Visibility      string `json:"visibility"      validate:"omitempty,oneof=PUBLIC PRIVATE"`
	MetaTitle       string `json:"metaTitle"       validate:"max=70"`
	MetaDescription string `json:"metaDescription" validate:"max=160"`
	PublishedAt     string `json:"publishedAt"     validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r createArticleRequest) toInput() ports.CreateArticleInput {
	return ports.CreateArticleInput{
		Title:           r.Title,
		Slug:            r.Slug,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		ThumbnailURL:    r.ThumbnailURL,
		Status:          domain.ArticleStatus(r.Status),
		Visibility:      domain.ArticleVisibility(r.Visibility),
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		PublishedAt:     parsePublishedAt(&r.PublishedAt),
	}
}

// updateArticleRequest is a partial update; absent fields are left untouched.
type updateArticleRequest struct {
	Title           *string `json:"title"           validate:"omitempty,min=5,max=200"`
	Slug            *string `json:"slug"            validate:"omitempty,min=3,max=200,slug"`
	Content         *string `json:"content"         validate:"omitempty,min=50"`
	Excerpt         *string `json:"excerpt"         validate:"omitempty,max=500"`
	ThumbnailURL    *string `json:"thumbnailUrl"    validate:"omitempty,urlorempty"`
	Status          *string `json:"status"          validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Visibility      *string `json:"visibility"      validate:"omitempty,oneof=PUBLIC PRIVATE"`
	MetaTitle       *string `json:"metaTitle"       validate:"omitempty,max=70"`
	MetaDescription *string `json:"metaDescription" validate:"omitempty,max=160"`
	PublishedAt     *string `json:"publishedAt"     validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r updateArticleRequest) toInput() ports.UpdateArticleInput {
	in := ports.UpdateArticleInput{
		Title:           r.Title,
		Slug:            r.Slug,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		ThumbnailURL:    r.ThumbnailURL,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		PublishedAt:     parsePublishedAt(r.PublishedAt),
	}
	if r.Status != nil {
		s := domain.ArticleStatus(*r.Status)
		in.Status = &s
	}
	if r.Visibility != nil {
		v := domain.ArticleVisibility(*r.Visibility)
		in.Visibility = &v
	}
	return in
}

// parsePublishedAt turns a validated RFC 3339 string into a UTC time. Empty
// or absent values yield nil.
func parsePublishedAt(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
