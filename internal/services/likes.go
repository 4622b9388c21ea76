package services

import (
	"context"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/internal/stats"
	"github.com/anonto42/nano-tube/backend/internal/toggle"
)

// likeEdges adapts LikeRepository to the toggle engine
type likeEdges struct {
	repo repositories.LikeRepository
}

func (e likeEdges) Exists(ctx context.Context, actorID string, target models.Target) (bool, error) {
	return e.repo.LikeExists(ctx, actorID, target)
}

func (e likeEdges) Insert(ctx context.Context, actorID string, target models.Target) error {
	return e.repo.CreateLike(ctx, &models.Like{LikedBy: actorID, Target: target})
}

func (e likeEdges) Remove(ctx context.Context, actorID string, target models.Target) (bool, error) {
	return e.repo.DeleteLike(ctx, actorID, target)
}

type likedVideo struct {
	video   models.Video
	likedAt time.Time
}

var likedSorter = compose.NewSorter("likedAt", map[string]func(a, b models.LikedVideo) int{
	"likedAt": compose.ByTime(func(v models.LikedVideo) time.Time { return v.LikedAt }),
})

// LikeService toggles likes on videos, comments and tweets
type LikeService struct {
	likes    repositories.LikeRepository
	videos   repositories.VideoRepository
	comments repositories.CommentRepository
	tweets   repositories.TweetRepository
	users    repositories.UserRepository
	stats    *stats.Aggregator
	engine   *toggle.Engine[models.Target]
}

func NewLikeService(
	likes repositories.LikeRepository,
	videos repositories.VideoRepository,
	comments repositories.CommentRepository,
	tweets repositories.TweetRepository,
	users repositories.UserRepository,
	aggregator *stats.Aggregator,
) *LikeService {
	return &LikeService{
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
		users:    users,
		stats:    aggregator,
		engine:   toggle.New[models.Target]("like", likeEdges{repo: likes}, models.Target.String),
	}
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, actorID, videoID string) (*models.ToggleLikeResult, error) {
	return s.toggle(ctx, actorID, models.VideoTarget(videoID))
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, actorID, commentID string) (*models.ToggleLikeResult, error) {
	return s.toggle(ctx, actorID, models.CommentTarget(commentID))
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, actorID, tweetID string) (*models.ToggleLikeResult, error) {
	return s.toggle(ctx, actorID, models.TweetTarget(tweetID))
}

func (s *LikeService) toggle(ctx context.Context, actorID string, target models.Target) (*models.ToggleLikeResult, error) {
	if err := requireID("user", actorID); err != nil {
		return nil, err
	}
	if err := requireID(string(target.Kind), target.ID); err != nil {
		return nil, err
	}
	channelID, err := s.lookupTarget(ctx, target)
	if err != nil {
		return nil, storeError(err, string(target.Kind)+" not found", "failed to fetch "+string(target.Kind))
	}

	liked, err := s.engine.Toggle(ctx, actorID, target)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to toggle like")
	}
	s.stats.Invalidate(ctx, channelID)
	return &models.ToggleLikeResult{IsLiked: liked}, nil
}

// lookupTarget checks the target exists. For videos it also returns the owning
// channel, whose like total changes with the toggle.
func (s *LikeService) lookupTarget(ctx context.Context, target models.Target) (string, error) {
	var err error
	switch target.Kind {
	case models.TargetVideo:
		video, verr := s.videos.GetVideoByID(ctx, target.ID)
		if verr != nil {
			return "", verr
		}
		return video.OwnerID, nil
	case models.TargetComment:
		_, err = s.comments.GetCommentByID(ctx, target.ID)
	case models.TargetTweet:
		_, err = s.tweets.GetTweetByID(ctx, target.ID)
	default:
		err = repositories.ErrNotFound
	}
	return "", err
}

// GetLikedVideos lists the videos the actor liked, most recently liked first.
// Likes of deleted videos and videos of deleted owners are skipped.
func (s *LikeService) GetLikedVideos(ctx context.Context, actorID string) ([]models.LikedVideo, error) {
	if err := requireID("user", actorID); err != nil {
		return nil, err
	}
	likes, err := s.likes.GetLikesByUser(ctx, actorID, models.TargetVideo)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch liked videos")
	}

	withVideos, err := compose.JoinOne(ctx, likes, compose.One[models.Like, models.Video, models.Video]{
		Name:       "like.video",
		LocalKey:   func(l models.Like) string { return l.Target.ID },
		Fetch:      s.videos.GetVideosByIDs,
		ForeignKey: func(v models.Video) string { return v.ID },
		Project:    func(v models.Video) models.Video { return v },
		Policy:     compose.Inner,
	}, func(l models.Like, v *models.Video) likedVideo {
		return likedVideo{video: *v, likedAt: l.CreatedAt}
	})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch liked videos")
	}

	join := ownerJoin(s.users, "liked.video.owner", func(l likedVideo) string { return l.video.OwnerID }, compose.Inner)
	out, err := compose.JoinOne(ctx, withVideos, join, func(l likedVideo, owner *models.OwnerProfile) models.LikedVideo {
		return l.video.Liked(*owner, l.likedAt)
	})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch video owners")
	}

	likedSorter.Sort(out, compose.Order{Field: "likedAt", Desc: true})
	return out, nil
}
