package domain

import "time"

// ArticleStatus is the editorial state of an article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "DRAFT"
	ArticlePublished ArticleStatus = "PUBLISHED"
	ArticleArchived  ArticleStatus = "ARCHIVED"
)

// ArticleVisibility controls whether a published article is listed publicly.
type ArticleVisibility string

const (
	VisibilityPublic  ArticleVisibility = "PUBLIC"
	VisibilityPrivate ArticleVisibility = "PRIVATE"
)

// Author is the slice of the author's profile embedded in article views.
type Author struct {
	Name      string  `json:"name" bson:"name"`
	AvatarURL *string `json:"avatarUrl" bson:"avatar_url,omitempty"`
}

// Article is a piece of site content.
type Article struct {
	ID              string            `json:"id" bson:"_id"`
	Title           string            `json:"title" bson:"title"`
	Slug            string            `json:"slug" bson:"slug"`
	Content         string            `json:"content,omitempty" bson:"content"`
	Excerpt         *string           `json:"excerpt" bson:"excerpt,omitempty"`
	ThumbnailURL    *string           `json:"thumbnailUrl" bson:"thumbnail_url,omitempty"`
	Status          ArticleStatus     `json:"status" bson:"status"`
	Visibility      ArticleVisibility `json:"visibility" bson:"visibility"`
	MetaTitle       *string           `json:"metaTitle,omitempty" bson:"meta_title,omitempty"`
	MetaDescription *string           `json:"metaDescription,omitempty" bson:"meta_description,omitempty"`
	PublishedAt     *time.Time        `json:"publishedAt" bson:"published_at,omitempty"`
	ViewCount       int64             `json:"viewCount" bson:"view_count"`
	AuthorID        string            `json:"-" bson:"author_id"`
	Author          Author            `json:"author" bson:"-"`
	CreatedAt       time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updated_at"`
}

// IsPubliclyVisible reports whether anonymous readers may see the article at now.
func (a *Article) IsPubliclyVisible(now time.Time) bool {
	if a.Status != ArticlePublished || a.Visibility != VisibilityPublic {
		return false
	}
	return a.PublishedAt == nil || !a.PublishedAt.After(now)
}

// ArticleStats summarises the article collection for the dashboard.
type ArticleStats struct {
	Total      int64 `json:"totalArticles"`
	Published  int64 `json:"publishedArticles"`
	Draft      int64 `json:"draftArticles"`
	TotalViews int64 `json:"totalViews"`
}
