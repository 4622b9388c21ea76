package repositories

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection(commentsCollection)}
}

func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = ""
	comment.CreatedAt = now()
	comment.UpdatedAt = comment.CreatedAt

	res, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return errors.Wrap(err, "insert comment")
	}
	comment.ID = insertedID(res)
	return nil
}

func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	return findByID[models.Comment](ctx, r.collection, id)
}

// GetCommentsByVideoID lists a video's comments, newest first
func (r *MongoCommentRepository) GetCommentsByVideoID(ctx context.Context, videoID string) ([]models.Comment, error) {
	return findAll[models.Comment](ctx, r.collection, bson.M{"video_id": videoID}, newestFirst)
}

func (r *MongoCommentRepository) UpdateCommentContent(ctx context.Context, id, content string) (*models.Comment, error) {
	update := bson.M{"$set": bson.M{"content": content, "updated_at": now()}}
	return updateByID[models.Comment](ctx, r.collection, id, update)
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}
