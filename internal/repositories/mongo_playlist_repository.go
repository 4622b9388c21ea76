package repositories

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPlaylistRepository implements PlaylistRepository for MongoDB
type MongoPlaylistRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaylistRepository creates a new MongoPlaylistRepository
func NewMongoPlaylistRepository(db *mongo.Database) *MongoPlaylistRepository {
	return &MongoPlaylistRepository{collection: db.Collection(playlistsCollection)}
}

func (r *MongoPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.ID = ""
	playlist.CreatedAt = now()
	playlist.UpdatedAt = playlist.CreatedAt
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []string{} // $push needs an array, not null
	}

	res, err := r.collection.InsertOne(ctx, playlist)
	if err != nil {
		return errors.Wrap(err, "insert playlist")
	}
	playlist.ID = insertedID(res)
	return nil
}

func (r *MongoPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error) {
	return findByID[models.Playlist](ctx, r.collection, id)
}

func (r *MongoPlaylistRepository) GetPlaylistsByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error) {
	return findAll[models.Playlist](ctx, r.collection, bson.M{"owner_id": ownerID}, newestFirst)
}

func (r *MongoPlaylistRepository) UpdatePlaylist(ctx context.Context, id string, update models.PlaylistUpdate) (*models.Playlist, error) {
	set := bson.M{"updated_at": now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	return updateByID[models.Playlist](ctx, r.collection, id, bson.M{"$set": set})
}

// AppendVideo adds videoID at the end of the list, even if it is already present
func (r *MongoPlaylistRepository) AppendVideo(ctx context.Context, id, videoID string) (*models.Playlist, error) {
	update := bson.M{
		"$push": bson.M{"video_ids": videoID},
		"$set":  bson.M{"updated_at": now()},
	}
	return updateByID[models.Playlist](ctx, r.collection, id, update)
}

// RemoveVideo removes every occurrence of videoID
func (r *MongoPlaylistRepository) RemoveVideo(ctx context.Context, id, videoID string) (*models.Playlist, error) {
	update := bson.M{
		"$pull": bson.M{"video_ids": videoID},
		"$set":  bson.M{"updated_at": now()},
	}
	return updateByID[models.Playlist](ctx, r.collection, id, update)
}

func (r *MongoPlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}
