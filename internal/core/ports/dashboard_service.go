package ports

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

type DashboardStats struct {
	TotalArticles     int64 `json:"totalArticles"`
	PublishedArticles int64 `json:"publishedArticles"`
	DraftArticles     int64 `json:"draftArticles"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalViews        int64 `json:"totalViews"`
}

type Dashboard struct {
	Stats          DashboardStats    `json:"stats"`
	RecentArticles []*domain.Article `json:"recentArticles"`
}

type DashboardService interface {
	Get(ctx context.Context) (*Dashboard, error)
}
