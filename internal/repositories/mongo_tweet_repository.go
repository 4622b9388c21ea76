package repositories

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTweetRepository implements TweetRepository for MongoDB
type MongoTweetRepository struct {
	collection *mongo.Collection
}

// NewMongoTweetRepository creates a new MongoTweetRepository
func NewMongoTweetRepository(db *mongo.Database) *MongoTweetRepository {
	return &MongoTweetRepository{collection: db.Collection(tweetsCollection)}
}

func (r *MongoTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	tweet.ID = ""
	tweet.CreatedAt = now()
	tweet.UpdatedAt = tweet.CreatedAt

	res, err := r.collection.InsertOne(ctx, tweet)
	if err != nil {
		return errors.Wrap(err, "insert tweet")
	}
	tweet.ID = insertedID(res)
	return nil
}

func (r *MongoTweetRepository) GetTweetByID(ctx context.Context, id string) (*models.Tweet, error) {
	return findByID[models.Tweet](ctx, r.collection, id)
}

func (r *MongoTweetRepository) GetTweetsByOwner(ctx context.Context, ownerID string) ([]models.Tweet, error) {
	return findAll[models.Tweet](ctx, r.collection, bson.M{"owner_id": ownerID}, newestFirst)
}

func (r *MongoTweetRepository) UpdateTweetContent(ctx context.Context, id, content string) (*models.Tweet, error) {
	update := bson.M{"$set": bson.M{"content": content, "updated_at": now()}}
	return updateByID[models.Tweet](ctx, r.collection, id, update)
}

func (r *MongoTweetRepository) DeleteTweet(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}
