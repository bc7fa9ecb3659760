package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

const collectionSettings = "settings"

type SettingRepository struct {
	col *mongo.Collection
}

func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{col: db.Collection(collectionSettings)}
}

func (r *SettingRepository) List(ctx context.Context, publicOnly bool) ([]*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if publicOnly {
		filter["is_public"] = true
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, dbError("list settings", err)
	}
	var out []*domain.Setting
	if err := cur.All(ctx, &out); err != nil {
		return nil, dbError("decode settings", err)
	}
	return out, nil
}

func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Setting
	if err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.SettingNotFound(key)
		}
		return nil, dbError("find setting", err)
	}
	return &s, nil
}

func (r *SettingRepository) UpdateValue(ctx context.Context, key, value string, updatedBy *string) (*domain.Setting, error) {
	s, err := r.findOneAndUpdate(ctx, key, bson.M{"$set": valueFields(value, updatedBy)}, false)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.SettingNotFound(key)
	}
	return s, err
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string, isPublic bool, updatedBy *string) (*domain.Setting, error) {
	update := bson.M{
		"$set":         valueFields(value, updatedBy),
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "is_public": isPublic},
	}
	return r.findOneAndUpdate(ctx, key, update, true)
}

// Seed inserts the setting when missing. Existing settings keep their value
// and only have description and visibility refreshed.
func (r *SettingRepository) Seed(ctx context.Context, s *domain.Setting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	set := bson.M{"is_public": s.IsPublic}
	if s.Description != nil {
		set["description"] = *s.Description
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": id, "value": s.Value, "updated_at": time.Now().UTC()},
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"key": s.Key}, update, options.Update().SetUpsert(true)); err != nil {
		return dbError("seed setting", err)
	}
	return nil
}

func (r *SettingRepository) findOneAndUpdate(ctx context.Context, key string, update bson.M, upsert bool) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(upsert)
	var s domain.Setting
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"key": key}, update, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, dbError("update setting", err)
	}
	return &s, nil
}

func valueFields(value string, updatedBy *string) bson.M {
	fields := bson.M{"value": value, "updated_at": time.Now().UTC()}
	if updatedBy != nil {
		fields["updated_by"] = *updatedBy
	}
	return fields
}

// EnsureIndexes creates necessary indexes on the settings collection.
func (r *SettingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
