package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gamesetuphub/backend/types"
)

const configsCollection = "configs"

const (
	// SortPopular orders by descending like count.
	SortPopular = "popular"
	// SortNewest orders by descending creation time.
	SortNewest = "newest"
)

// ConfigRepository handles persistence for game configurations.
type ConfigRepository struct {
	collection *mongo.Collection
}

func NewConfigRepository(database *mongo.Database) *ConfigRepository {
	return &ConfigRepository{collection: database.Collection(configsCollection)}
}

// ListFilter restricts a listing. All set fields must match.
type ListFilter struct {
	// Query runs a full-text search over game, description, content
	// and tags.
	Query string
	// Game matches the game name case-insensitively as a pattern.
	Game string
	// Tag requires tag membership.
	Tag string
}

// ConfigUpdate describes a partial configuration mutation. Nil fields
// are left untouched. When Content is set, the current content is
// appended to the version history before being replaced.
type ConfigUpdate struct {
	Description *string
	Content     *string
	Tags        *[]string
}

func (r *ConfigRepository) Create(ctx context.Context, cfg types.Config) (types.Config, error) {
	now := time.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	if cfg.Tags == nil {
		cfg.Tags = []string{}
	}
	cfg.LikedBy = []string{}
	cfg.Comments = []types.Comment{}
	cfg.Versions = []types.Version{}
	cfg.Likes = 0

	result, err := r.collection.InsertOne(ctx, cfg)
	if err != nil {
		return types.Config{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cfg.ID = oid
	}
	return cfg, nil
}

func (r *ConfigRepository) Get(ctx context.Context, id string) (types.Config, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return types.Config{}, ErrNotFound
	}

	var cfg types.Config
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&cfg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Config{}, ErrNotFound
		}
		return types.Config{}, err
	}
	return cfg, nil
}

func (r *ConfigRepository) List(ctx context.Context, filter ListFilter, sort string, offset, limit int) ([]types.Config, int, error) {
	query := bson.M{}
	if filter.Game != "" {
		query["game"] = primitive.Regex{Pattern: filter.Game, Options: "i"}
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	order := bson.D{{Key: "createdAt", Value: -1}}
	if sort == SortPopular {
		order = bson.D{{Key: "likes", Value: -1}}
	}

	opts := options.Find().
		SetSort(order).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	results := []types.Config{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	return results, int(total), nil
}

func (r *ConfigRepository) Update(ctx context.Context, id string, update ConfigUpdate) (types.Config, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return types.Config{}, err
	}

	now := time.Now()
	set := bson.M{"updatedAt": now}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}

	change := bson.M{"$set": set}
	if update.Content != nil {
		set["content"] = *update.Content
		change["$push"] = bson.M{"versions": types.Version{
			Content:   current.Content,
			CreatedAt: now,
		}}
	}

	var updated types.Config
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": current.ID},
		change,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Config{}, ErrNotFound
		}
		return types.Config{}, err
	}
	return updated, nil
}

func (r *ConfigRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ConfigRepository) AddComment(ctx context.Context, id string, comment types.Comment) ([]types.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var updated types.Config
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated.Comments, nil
}

// Like adds userID to the liked-by set and bumps the counter in a
// single conditional update, so concurrent likes from the same user
// cannot double-count. Returns the resulting like count.
func (r *ConfigRepository) Like(ctx context.Context, id, userID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid, "likedBy": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"likedBy": userID},
			"$inc":      bson.M{"likes": 1},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return 0, err
	}

	return r.likeCount(ctx, oid)
}

// Unlike removes userID from the liked-by set; a no-op when it is not
// a member. Returns the resulting like count.
func (r *ConfigRepository) Unlike(ctx context.Context, id, userID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid, "likedBy": userID},
		bson.M{
			"$pull": bson.M{"likedBy": userID},
			"$inc":  bson.M{"likes": -1},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return 0, err
	}

	return r.likeCount(ctx, oid)
}

func (r *ConfigRepository) likeCount(ctx context.Context, oid primitive.ObjectID) (int, error) {
	var cfg types.Config
	opts := options.FindOne().SetProjection(bson.M{"likes": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&cfg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return cfg.Likes, nil
}

// EnsureIndexes creates the text index backing full-text search and a
// plain index on the game name.
func (r *ConfigRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "game", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "game", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "content", Value: "text"},
				{Key: "tags", Value: "text"},
			},
		},
	})
	return err
}
