package repositories

import (
	"context"
	"regexp"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVideoRepository implements VideoRepository for MongoDB
type MongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new MongoVideoRepository
func NewMongoVideoRepository(db *mongo.Database) *MongoVideoRepository {
	return &MongoVideoRepository{collection: db.Collection(videosCollection)}
}

// CreateVideo inserts video and fills in its generated id and timestamps
func (r *MongoVideoRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	video.ID = ""
	video.CreatedAt = now()
	video.UpdatedAt = video.CreatedAt

	res, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return errors.Wrap(err, "insert video")
	}
	video.ID = insertedID(res)
	return nil
}

// GetVideoByID retrieves a video by ID
func (r *MongoVideoRepository) GetVideoByID(ctx context.Context, id string) (*models.Video, error) {
	return findByID[models.Video](ctx, r.collection, id)
}

// GetVideosByIDs retrieves the videos that exist among ids, in no particular order
func (r *MongoVideoRepository) GetVideosByIDs(ctx context.Context, ids []string) ([]models.Video, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []models.Video{}, nil
	}
	return findAll[models.Video](ctx, r.collection, bson.M{"_id": bson.M{"$in": oids}})
}

// FindVideos lists videos matching filter, newest first
func (r *MongoVideoRepository) FindVideos(ctx context.Context, filter models.VideoFilter) ([]models.Video, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Query != "" {
		pattern := containsFold(filter.Query)
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return findAll[models.Video](ctx, r.collection, query, newestFirst)
}

// UpdateVideo applies the non-nil fields of update
func (r *MongoVideoRepository) UpdateVideo(ctx context.Context, id string, update models.VideoUpdate) (*models.Video, error) {
	set := bson.M{"updated_at": now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Thumbnail != nil {
		set["thumbnail"] = *update.Thumbnail
	}
	return updateByID[models.Video](ctx, r.collection, id, bson.M{"$set": set})
}

// TogglePublish flips is_published in a single update
func (r *MongoVideoRepository) TogglePublish(ctx context.Context, id string) (*models.Video, error) {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"is_published": bson.M{"$not": bson.A{"$is_published"}},
			"updated_at":   now(),
		}},
	}
	return updateByID[models.Video](ctx, r.collection, id, pipeline)
}

// DeleteVideo deletes a video by ID
func (r *MongoVideoRepository) DeleteVideo(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// VideoTotalsByOwner counts the owner's videos and sums their views
func (r *MongoVideoRepository) VideoTotalsByOwner(ctx context.Context, ownerID string) (models.VideoTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner_id", Value: ownerID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_videos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.VideoTotals{}, errors.Wrap(err, "aggregate video totals")
	}
	defer cursor.Close(ctx)

	var rows []models.VideoTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return models.VideoTotals{}, errors.Wrap(err, "decode video totals")
	}
	if len(rows) == 0 {
		return models.VideoTotals{}, nil
	}
	return rows[0], nil
}

// VideoIDsByOwner returns the ids of every video the owner has
func (r *MongoVideoRepository) VideoIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	docs, err := findAll[struct {
		ID string `bson:"_id"`
	}](ctx, r.collection, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func containsFold(text string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
}
