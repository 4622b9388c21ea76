package repositories

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid id")
)

// UserRepository defines the interface for user profile operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByID(ctx context.Context, id string) (*models.Video, error)
	GetVideosByIDs(ctx context.Context, ids []string) ([]models.Video, error)
	FindVideos(ctx context.Context, filter models.VideoFilter) ([]models.Video, error)
	UpdateVideo(ctx context.Context, id string, update models.VideoUpdate) (*models.Video, error)
	TogglePublish(ctx context.Context, id string) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error
	VideoTotalsByOwner(ctx context.Context, ownerID string) (models.VideoTotals, error)
	VideoIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByVideoID(ctx context.Context, videoID string) ([]models.Comment, error)
	UpdateCommentContent(ctx context.Context, id, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweetByID(ctx context.Context, id string) (*models.Tweet, error)
	GetTweetsByOwner(ctx context.Context, ownerID string) ([]models.Tweet, error)
	UpdateTweetContent(ctx context.Context, id, content string) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, id string) error
}

// PlaylistRepository defines the interface for playlist data operations
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error)
	GetPlaylistsByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, update models.PlaylistUpdate) (*models.Playlist, error)
	AppendVideo(ctx context.Context, id, videoID string) (*models.Playlist, error)
	RemoveVideo(ctx context.Context, id, videoID string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
}

// LikeRepository defines the interface for like edge operations.
// CreateLike returns ErrDuplicate when the edge already exists.
type LikeRepository interface {
	LikeExists(ctx context.Context, userID string, target models.Target) (bool, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID string, target models.Target) (bool, error)
	GetLikesByUser(ctx context.Context, userID string, kind models.TargetKind) ([]models.Like, error)
	CountLikes(ctx context.Context, kind models.TargetKind, targetIDs []string) (int64, error)
}

// SubscriptionRepository defines the interface for subscription edge operations.
// CreateSubscription returns ErrDuplicate when the edge already exists.
type SubscriptionRepository interface {
	SubscriptionExists(ctx context.Context, subscriberID, channelID string) (bool, error)
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	GetSubscriptionsByChannel(ctx context.Context, channelID string) ([]models.Subscription, error)
	GetSubscriptionsBySubscriber(ctx context.Context, subscriberID string) ([]models.Subscription, error)
}

// Store groups the repositories of one storage backend
type Store struct {
	Users         UserRepository
	Videos        VideoRepository
	Comments      CommentRepository
	Tweets        TweetRepository
	Playlists     PlaylistRepository
	Likes         LikeRepository
	Subscriptions SubscriptionRepository
}
