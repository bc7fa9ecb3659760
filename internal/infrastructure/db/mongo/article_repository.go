package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

// articleDoc is an article joined with its author.
type articleDoc struct {
	domain.Article `bson:",inline"`
	AuthorDoc      *domain.Author `bson:"author,omitempty"`
}

func (d *articleDoc) toDomain() *domain.Article {
	a := d.Article
	if d.AuthorDoc != nil {
		a.Author = *d.AuthorDoc
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	if a.PublishedAt != nil {
		t := a.PublishedAt.UTC()
		a.PublishedAt = &t
	}
	return &a
}

// withAuthor appends the stages that resolve author_id into the author projection.
func withAuthor(pipeline mongo.Pipeline) mongo.Pipeline {
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
}

// Create inserts a new article document.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.AlreadyExists("slug is already used")
		}
		return dbError("insert article", err)
	}
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (r *ArticleRepository) findOne(ctx context.Context, match bson.D) (*domain.Article, error) {
	docs, err := r.aggregate(ctx, withAuthor(mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$limit", Value: 1}},
	}))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return docs[0], nil
}

func articleFilter(f ports.ArticleFilter) bson.D {
	filter := bson.D{}
	if !f.PublishedBefore.IsZero() {
		filter = append(filter,
			bson.E{Key: "status", Value: string(domain.ArticlePublished)},
			bson.E{Key: "visibility", Value: string(domain.VisibilityPublic)},
			bson.E{Key: "published_at", Value: bson.M{"$lte": f.PublishedBefore}},
		)
	} else {
		if f.Status != "" {
			filter = append(filter, bson.E{Key: "status", Value: string(f.Status)})
		}
		if f.Visibility != "" {
			filter = append(filter, bson.E{Key: "visibility", Value: string(f.Visibility)})
		}
	}
	if f.AuthorID != "" {
		filter = append(filter, bson.E{Key: "author_id", Value: f.AuthorID})
	}
	if f.Search != "" {
		re := containsInsensitive(f.Search)
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{bson.M{"title": re}, bson.M{"content": re}}})
	}
	return filter
}

// List returns one page of articles, newest publication first.
func (r *ArticleRepository) List(ctx context.Context, f ports.ArticleFilter) ([]*domain.Article, int64, error) {
	filter := articleFilter(f)

	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	total, err := r.col.CountDocuments(countCtx, filter)
	cancel()
	if err != nil {
		return nil, 0, dbError("count articles", err)
	}

	docs, err := r.aggregate(ctx, withAuthor(mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: int64((f.Page - 1) * f.Limit)}},
		{{Key: "$limit", Value: int64(f.Limit)}},
	}))
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *ArticleRepository) Recent(ctx context.Context, n int) ([]*domain.Article, error) {
	return r.aggregate(ctx, withAuthor(mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: int64(n)}},
	}))
}

func (r *ArticleRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, dbError("aggregate articles", err)
	}
	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dbError("decode articles", err)
	}
	out := make([]*domain.Article, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update replaces the stored article. The view counter is left to
// IncrementViews so concurrent reads are not lost.
func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":      a.Title,
		"slug":       a.Slug,
		"content":    a.Content,
		"status":     string(a.Status),
		"visibility": string(a.Visibility),
		"updated_at": a.UpdatedAt,
	}
	unset := bson.M{}
	for field, v := range map[string]any{
		"excerpt":          a.Excerpt,
		"thumbnail_url":    a.ThumbnailURL,
		"meta_title":       a.MetaTitle,
		"meta_description": a.MetaDescription,
	} {
		if s := v.(*string); s != nil {
			set[field] = *s
		} else {
			unset[field] = ""
		}
	}
	if a.PublishedAt != nil {
		set["published_at"] = *a.PublishedAt
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.AlreadyExists("slug is already used")
		}
		return dbError("update article", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError("delete article", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id string, n int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"view_count": n}})
	if err != nil {
		return dbError("increment views", err)
	}
	return nil
}

func (r *ArticleRepository) Stats(ctx context.Context) (*domain.ArticleStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	countIf := func(status domain.ArticleStatus) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(status)}}, 1, 0}}}
	}
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"published": countIf(domain.ArticlePublished),
			"draft":     countIf(domain.ArticleDraft),
			"views":     bson.M{"$sum": "$view_count"},
		}}},
	})
	if err != nil {
		return nil, dbError("article stats", err)
	}
	var rows []struct {
		Total     int64 `bson:"total"`
		Published int64 `bson:"published"`
		Draft     int64 `bson:"draft"`
		Views     int64 `bson:"views"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, dbError("decode article stats", err)
	}
	st := &domain.ArticleStats{}
	if len(rows) > 0 {
		st.Total, st.Published, st.Draft, st.TotalViews = rows[0].Total, rows[0].Published, rows[0].Draft, rows[0].Views
	}
	return st, nil
}

func (r *ArticleRepository) CountByAuthors(ctx context.Context, authorIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"author_id": bson.M{"$in": authorIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$author_id", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, dbError("count articles by author", err)
	}
	var rows []struct {
		AuthorID string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, dbError("decode author counts", err)
	}
	for _, row := range rows {
		out[row.AuthorID] = row.Count
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the articles collection.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "visibility", Value: 1}, {Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
