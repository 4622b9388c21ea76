package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/media"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/paginate"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/pkg/errors"
)

var videoSorter = compose.NewSorter("createdAt", map[string]func(a, b models.Video) int{
	"createdAt": compose.ByTime(func(v models.Video) time.Time { return v.CreatedAt }),
	"updatedAt": compose.ByTime(func(v models.Video) time.Time { return v.UpdatedAt }),
	"views":     compose.By(func(v models.Video) int64 { return v.Views }),
	"duration":  compose.By(func(v models.Video) float64 { return v.Duration }),
	"title":     compose.By(func(v models.Video) string { return v.Title }),
})

// ListVideosQuery holds the raw query parameters of a video listing
type ListVideosQuery struct {
	Query    string
	UserID   string
	SortBy   string
	SortType string
	Page     string
	Limit    string
}

type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput carries the changes to a video; empty fields are left untouched
type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// VideoService handles video publishing and listing
type VideoService struct {
	videos  repositories.VideoRepository
	users   repositories.UserRepository
	storage media.Storage
}

func NewVideoService(videos repositories.VideoRepository, users repositories.UserRepository, storage media.Storage) *VideoService {
	return &VideoService{videos: videos, users: users, storage: storage}
}

func (s *VideoService) withOwners(ctx context.Context, videos []models.Video) ([]models.VideoView, error) {
	join := ownerJoin(s.users, "video.owner", func(v models.Video) string { return v.OwnerID }, compose.Inner)
	return compose.JoinOne(ctx, videos, join, func(v models.Video, owner *models.OwnerProfile) models.VideoView {
		return v.View(*owner)
	})
}

// ListVideos filters, sorts, joins owners and then pages, so totals count exactly the composed rows
func (s *VideoService) ListVideos(ctx context.Context, q ListVideosQuery) (*paginate.Page[models.VideoView], error) {
	if q.UserID != "" {
		if err := requireID("user", q.UserID); err != nil {
			return nil, err
		}
	}
	params, err := paginate.Parse(q.Page, q.Limit)
	if err != nil {
		return nil, pageError(err)
	}
	order, err := videoSorter.Parse(q.SortBy, q.SortType)
	if err != nil {
		return nil, sortError(err)
	}

	videos, err := s.videos.FindVideos(ctx, models.VideoFilter{
		OwnerID: q.UserID,
		Query:   strings.TrimSpace(q.Query),
	})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch videos")
	}
	videoSorter.Sort(videos, order)

	views, err := s.withOwners(ctx, videos)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch video owners")
	}

	page := paginate.Paginate(views, params)
	return &page, nil
}

// GetVideoByID returns one video with its owner
func (s *VideoService) GetVideoByID(ctx context.Context, videoID string) (*models.VideoView, error) {
	if err := requireID("video", videoID); err != nil {
		return nil, err
	}
	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}

	views, err := s.withOwners(ctx, []models.Video{*video})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch video owner")
	}
	if len(views) == 0 {
		return nil, apperr.NotFound("video not found")
	}
	return &views[0], nil
}

// PublishVideo uploads both files and stores the record. Anything uploaded
// before a failure is deleted again.
func (s *VideoService) PublishVideo(ctx context.Context, actorID string, in PublishVideoInput) (*models.Video, error) {
	if err := requireID("user", actorID); err != nil {
		return nil, err
	}
	title, description := strings.TrimSpace(in.Title), strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperr.ValidationFailed("title and description are required")
	}
	if in.VideoPath == "" {
		return nil, apperr.ValidationFailed("video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, apperr.ValidationFailed("thumbnail is required")
	}

	file, err := s.storage.Upload(ctx, in.VideoPath, media.FolderVideos)
	if err != nil {
		return nil, apperr.StoreFailure(err, "error while uploading video file")
	}
	thumb, err := s.storage.Upload(ctx, in.ThumbnailPath, media.FolderThumbnails)
	if err != nil {
		s.discard(ctx, file.Asset)
		return nil, apperr.StoreFailure(err, "error while uploading thumbnail")
	}

	video := &models.Video{
		OwnerID:     actorID,
		Title:       title,
		Description: description,
		VideoFile:   file.Asset,
		Thumbnail:   thumb.Asset,
		Duration:    file.Duration,
		IsPublished: true,
	}
	if err := s.videos.CreateVideo(ctx, video); err != nil {
		s.discard(ctx, file.Asset, thumb.Asset)
		return nil, apperr.StoreFailure(err, "failed to save video")
	}

	logger.From(ctx).WithField("video_id", video.ID).Info("video published")
	return video, nil
}

// UpdateVideo changes title, description or thumbnail. A new thumbnail
// replaces the old object; if the old one cannot be deleted the new upload is
// rolled back.
func (s *VideoService) UpdateVideo(ctx context.Context, actorID, videoID string, in UpdateVideoInput) (*models.Video, error) {
	if err := requireID("video", videoID); err != nil {
		return nil, err
	}
	title, description := strings.TrimSpace(in.Title), strings.TrimSpace(in.Description)
	if title == "" && description == "" && in.ThumbnailPath == "" {
		return nil, apperr.ValidationFailed("at least one of title, description or thumbnail is required")
	}

	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}
	if err := ensureOwner(video.OwnerID, actorID, "video"); err != nil {
		return nil, err
	}

	var update models.VideoUpdate
	if title != "" {
		update.Title = &title
	}
	if description != "" {
		update.Description = &description
	}

	if in.ThumbnailPath != "" {
		thumb, err := s.storage.Upload(ctx, in.ThumbnailPath, media.FolderThumbnails)
		if err != nil {
			return nil, apperr.StoreFailure(err, "error while uploading thumbnail")
		}
		if err := s.remove(ctx, video.Thumbnail); err != nil {
			s.discard(ctx, thumb.Asset)
			return nil, apperr.StoreFailure(err, "failed to delete old thumbnail")
		}
		update.Thumbnail = &thumb.Asset
	}

	updated, err := s.videos.UpdateVideo(ctx, videoID, update)
	if err != nil {
		if update.Thumbnail != nil {
			s.discard(ctx, *update.Thumbnail)
		}
		return nil, storeError(err, "video not found", "failed to update video")
	}
	return updated, nil
}

// DeleteVideo removes the record, then its objects. Object cleanup failures are only logged.
func (s *VideoService) DeleteVideo(ctx context.Context, actorID, videoID string) (*models.Video, error) {
	if err := requireID("video", videoID); err != nil {
		return nil, err
	}
	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}
	if err := ensureOwner(video.OwnerID, actorID, "video"); err != nil {
		return nil, err
	}

	if err := s.videos.DeleteVideo(ctx, videoID); err != nil {
		return nil, storeError(err, "video not found", "failed to delete video")
	}
	s.discard(ctx, video.VideoFile, video.Thumbnail)
	return video, nil
}

func (s *VideoService) TogglePublishStatus(ctx context.Context, actorID, videoID string) (*models.Video, error) {
	if err := requireID("video", videoID); err != nil {
		return nil, err
	}
	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}
	if err := ensureOwner(video.OwnerID, actorID, "video"); err != nil {
		return nil, err
	}

	updated, err := s.videos.TogglePublish(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video not found", "failed to toggle publish status")
	}
	return updated, nil
}

// remove deletes an object; one that is already gone counts as deleted
func (s *VideoService) remove(ctx context.Context, asset models.Asset) error {
	if asset.StorageID == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, asset.StorageID); err != nil && !errors.Is(err, media.ErrObjectNotFound) {
		return err
	}
	return nil
}

// discard is the best-effort cleanup for objects no record points at. It
// outlives request cancellation.
func (s *VideoService) discard(ctx context.Context, assets ...models.Asset) {
	ctx = context.WithoutCancel(ctx)
	for _, a := range assets {
		if err := s.remove(ctx, a); err != nil {
			logger.From(ctx).WithError(err).WithField("storage_id", a.StorageID).Error("failed to delete orphaned object")
		}
	}
}
