package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/infrastructure/security"
)

const collectionSessions = "sessions"

// SessionRepository stores refresh sessions keyed by the SHA-256 of the
// refresh token. A TTL index drops sessions once they expire.
type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

type mongoSession struct {
	ID        string    `bson:"_id"`
	TokenHash string    `bson:"token_hash"`
	UserID    string    `bson:"user_id"`
	Status    string    `bson:"status"`
	ExpiresAt time.Time `bson:"expires_at"`
	IPAddress string    `bson:"ip_address,omitempty"`
	UserAgent string    `bson:"user_agent,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSession{
		ID:        s.ID,
		TokenHash: security.HashRefreshToken(s.Token),
		UserID:    s.UserID,
		Status:    string(s.Status),
		ExpiresAt: s.ExpiresAt,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.AlreadyExists("session already exists")
		}
		return dbError("insert session", err)
	}
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	err := r.col.FindOne(ctx, tokenFilter(token)).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewError(domain.ErrNotFound, "session not found")
		}
		return nil, dbError("find session", err)
	}
	return &domain.Session{
		ID:        ms.ID,
		UserID:    ms.UserID,
		Status:    domain.SessionStatus(ms.Status),
		ExpiresAt: ms.ExpiresAt.UTC(),
		IPAddress: ms.IPAddress,
		UserAgent: ms.UserAgent,
		CreatedAt: ms.CreatedAt.UTC(),
	}, nil
}

func (r *SessionRepository) RevokeByToken(ctx context.Context, token string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, activeTokenFilter(token), revoke())
	if err != nil {
		return 0, dbError("revoke session", err)
	}
	return res.ModifiedCount, nil
}

func (r *SessionRepository) RevokeAllByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx, activeUserFilter(userID), revoke())
	if err != nil {
		return 0, dbError("revoke sessions", err)
	}
	return res.ModifiedCount, nil
}

// tokenFilter matches on the token hash; raw tokens never reach the database.
func tokenFilter(token string) bson.M {
	return bson.M{"token_hash": security.HashRefreshToken(token)}
}

// activeTokenFilter only matches an ACTIVE session, so a second revoke is a no-op.
func activeTokenFilter(token string) bson.M {
	f := tokenFilter(token)
	f["status"] = string(domain.SessionActive)
	return f
}

func activeUserFilter(userID string) bson.M {
	return bson.M{"user_id": userID, "status": string(domain.SessionActive)}
}

func revoke() bson.M {
	return bson.M{"$set": bson.M{"status": string(domain.SessionRevoked)}}
}

// EnsureIndexes creates necessary indexes on the sessions collection.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
