package service

import (
	"context"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

const recentArticles = 5

type DashboardService struct {
	articles ports.ArticleRepository
	users    ports.UserRepository
}

func NewDashboardService(articles ports.ArticleRepository, users ports.UserRepository) *DashboardService {
	return &DashboardService{articles: articles, users: users}
}

func (s *DashboardService) Get(ctx context.Context) (*ports.Dashboard, error) {
	st, err := s.articles.Stats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.articles.Recent(ctx, recentArticles)
	if err != nil {
		return nil, err
	}
	for _, a := range recent {
		a.Content = ""
	}
	if recent == nil {
		recent = []*domain.Article{}
	}
	return &ports.Dashboard{
		Stats: ports.DashboardStats{
			TotalArticles:     st.Total,
			PublishedArticles: st.Published,
			DraftArticles:     st.Draft,
			TotalUsers:        users,
			TotalViews:        st.TotalViews,
		},
		RecentArticles: recent,
	}, nil
}
