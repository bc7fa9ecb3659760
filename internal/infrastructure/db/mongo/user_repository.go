package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col      *mongo.Collection
	sessions *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col:      db.Collection(collectionUsers),
		sessions: db.Collection(collectionSessions),
	}
}

type mongoUser struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	IsActive     bool      `bson:"is_active"`
	AvatarURL    *string   `bson:"avatar_url,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Name:         mu.Name,
		Role:         domain.Role(mu.Role),
		IsActive:     mu.IsActive,
		AvatarURL:    mu.AvatarURL,
		CreatedAt:    mu.CreatedAt.UTC(),
		UpdatedAt:    mu.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.AlreadyExists("email is already registered")
		}
		return dbError("insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail matches the email exactly as stored.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, dbError("find user", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}
	if f.Search != "" {
		re := containsInsensitive(f.Search)
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"email": re}}
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *UserRepository) ListPage(ctx context.Context, page, limit int) ([]*domain.User, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	users, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, dbError("list users", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dbError("decode users", err)
	}
	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dbError("count users", err)
	}
	return n, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.AlreadyExists("email is already registered")
		}
		return dbError("update user", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.set(ctx, id, bson.M{"is_active": active})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.set(ctx, id, bson.M{"password_hash": passwordHash})
}

func (r *UserRepository) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return dbError("update user", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user and every session it owns.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError("delete user", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	if _, err := r.sessions.DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
		return dbError("delete user sessions", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
