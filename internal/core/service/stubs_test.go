package service

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.AlreadyExists("email is already registered")
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUserRepo) ListPage(ctx context.Context, page, limit int) ([]*domain.User, int64, error) {
	all, _ := r.List(ctx, ports.UserFilter{})
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := min(start+limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session // keyed by raw token
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.Token]; ok {
		return domain.AlreadyExists("session already exists")
	}
	clone := *s
	r.sessions[s.Token] = &clone
	return nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "session not found")
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) RevokeByToken(_ context.Context, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok && s.Status == domain.SessionActive {
		s.Status = domain.SessionRevoked
		return 1, nil
	}
	return 0, nil
}

func (r *stubSessionRepo) RevokeAllByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID && s.Status == domain.SessionActive {
			s.Status = domain.SessionRevoked
			n++
		}
	}
	return n, nil
}

func (r *stubSessionRepo) count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

type stubArticleRepo struct {
	mu       sync.Mutex
	articles map[string]*domain.Article
	views    map[string]int64
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{
		articles: make(map[string]*domain.Article),
		views:    make(map[string]int64),
	}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	return &clone
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.articles {
		if x.Slug == a.Slug {
			return domain.AlreadyExists("slug is already used")
		}
	}
	r.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) FindBySlug(_ context.Context, slug string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Slug == slug {
			return cloneArticle(a), nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) List(_ context.Context, f ports.ArticleFilter) ([]*domain.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Article
	for _, a := range r.articles {
		if !f.PublishedBefore.IsZero() && !a.IsPubliclyVisible(f.PublishedBefore) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Visibility != "" && a.Visibility != f.Visibility {
			continue
		}
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(a.Title), q) && !strings.Contains(strings.ToLower(a.Content), q) {
				continue
			}
		}
		all = append(all, cloneArticle(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	start := min((f.Page-1)*f.Limit, len(all))
	end := min(start+f.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[a.ID]; !ok {
		return domain.ErrArticleNotFound
	}
	for _, x := range r.articles {
		if x.ID != a.ID && x.Slug == a.Slug {
			return domain.AlreadyExists("slug is already used")
		}
	}
	r.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *stubArticleRepo) IncrementViews(_ context.Context, id string, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[id] += n
	if a, ok := r.articles[id]; ok {
		a.ViewCount += n
	}
	return nil
}

func (r *stubArticleRepo) Stats(_ context.Context) (*domain.ArticleStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := &domain.ArticleStats{}
	for _, a := range r.articles {
		st.Total++
		switch a.Status {
		case domain.ArticlePublished:
			st.Published++
		case domain.ArticleDraft:
			st.Draft++
		}
		st.TotalViews += a.ViewCount
	}
	return st, nil
}

func (r *stubArticleRepo) Recent(_ context.Context, n int) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Article
	for _, a := range r.articles {
		out = append(out, cloneArticle(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *stubArticleRepo) CountByAuthors(_ context.Context, ids []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64)
	for _, a := range r.articles {
		if slices.Contains(ids, a.AuthorID) {
			out[a.AuthorID]++
		}
	}
	return out, nil
}

type stubSettingRepo struct {
	mu       sync.Mutex
	settings map[string]*domain.Setting
}

func newStubSettingRepo(seed ...*domain.Setting) *stubSettingRepo {
	r := &stubSettingRepo{settings: make(map[string]*domain.Setting)}
	for _, s := range seed {
		r.settings[s.Key] = s
	}
	return r
}

func cloneSetting(s *domain.Setting) *domain.Setting {
	clone := *s
	return &clone
}

func (r *stubSettingRepo) List(_ context.Context, publicOnly bool) ([]*domain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Setting
	for _, s := range r.settings {
		if publicOnly && !s.IsPublic {
			continue
		}
		out = append(out, cloneSetting(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *stubSettingRepo) FindByKey(_ context.Context, key string) (*domain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[key]
	if !ok {
		return nil, domain.SettingNotFound(key)
	}
	return cloneSetting(s), nil
}

func (r *stubSettingRepo) UpdateValue(_ context.Context, key, value string, by *string) (*domain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[key]
	if !ok {
		return nil, domain.SettingNotFound(key)
	}
	s.Value, s.UpdatedBy = value, by
	return cloneSetting(s), nil
}

func (r *stubSettingRepo) Upsert(_ context.Context, key, value string, isPublic bool, by *string) (*domain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[key]
	if !ok {
		s = &domain.Setting{ID: key, Key: key, IsPublic: isPublic}
		r.settings[key] = s
	}
	s.Value, s.UpdatedBy = value, by
	return cloneSetting(s), nil
}

func (r *stubSettingRepo) Seed(_ context.Context, in *domain.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.settings[in.Key]; ok {
		s.Description, s.IsPublic = in.Description, in.IsPublic
		return nil
	}
	r.settings[in.Key] = cloneSetting(in)
	return nil
}

type recordingViews struct {
	mu  sync.Mutex
	ids []string
}

func (v *recordingViews) Record(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ids = append(v.ids, id)
}

func (v *recordingViews) recorded() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.ids...)
}
