package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

const (
	videosCollection    = "videos"
	commentsCollection  = "comments"
	tweetsCollection    = "tweets"
	playlistsCollection = "playlists"
)

// NewStore wires the MongoDB content repositories and the PostgreSQL edge repositories
func NewStore(mdb *mongo.Database, pg *gorm.DB) *Store {
	return &Store{
		Users:         NewPostgresUserRepository(pg),
		Videos:        NewMongoVideoRepository(mdb),
		Comments:      NewMongoCommentRepository(mdb),
		Tweets:        NewMongoTweetRepository(mdb),
		Playlists:     NewMongoPlaylistRepository(mdb),
		Likes:         NewPostgresLikeRepository(pg),
		Subscriptions: NewPostgresSubscriptionRepository(pg),
	}
}

// EnsureMongoIndexes creates the indexes the listing queries rely on
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	byOwner := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("owner_created_desc"),
	}

	indexes := map[string][]mongo.IndexModel{
		videosCollection: {byOwner},
		tweetsCollection: {byOwner},
		playlistsCollection: {{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("owner"),
		}},
		commentsCollection: {{
			Keys:    bson.D{{Key: "video_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("video_created_desc"),
		}},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(ErrInvalidID, "%q", id)
	}
	return oid, nil
}

// objectIDs converts the well-formed ids and skips the rest
func objectIDs(list []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(list))
	for _, id := range list {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc T
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "find %s %s", coll.Name(), id)
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", coll.Name())
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode %s", coll.Name())
	}
	return docs, nil
}

func updateByID[T any](ctx context.Context, coll *mongo.Collection, id string, update any) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "update %s %s", coll.Name(), id)
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete %s %s", coll.Name(), id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
