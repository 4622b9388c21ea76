package services

import (
	"context"
	"strings"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/paginate"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
)

// CommentService handles comments on videos
type CommentService struct {
	comments repositories.CommentRepository
	videos   repositories.VideoRepository
	users    repositories.UserRepository
}

func NewCommentService(comments repositories.CommentRepository, videos repositories.VideoRepository, users repositories.UserRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos, users: users}
}

// ListVideoComments pages a video's comments, newest first, each with its author
func (s *CommentService) ListVideoComments(ctx context.Context, videoID, page, limit string) (*paginate.Page[models.CommentView], error) {
	if err := requireID("video", videoID); err != nil {
		return nil, err
	}
	params, err := paginate.Parse(page, limit)
	if err != nil {
		return nil, pageError(err)
	}
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}

	comments, err := s.comments.GetCommentsByVideoID(ctx, videoID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch comments")
	}

	join := ownerJoin(s.users, "comment.owner", func(c models.Comment) string { return c.OwnerID }, compose.Inner)
	views, err := compose.JoinOne(ctx, comments, join, func(c models.Comment, owner *models.OwnerProfile) models.CommentView {
		return c.View(*owner)
	})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch comment owners")
	}

	result := paginate.Paginate(views, params)
	return &result, nil
}

func (s *CommentService) AddComment(ctx context.Context, actorID, videoID, content string) (*models.Comment, error) {
	if err := requireID("video", videoID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.ValidationFailed("content is required")
	}
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}

	comment := &models.Comment{VideoID: videoID, OwnerID: actorID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, apperr.StoreFailure(err, "failed to add comment")
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID, content string) (*models.Comment, error) {
	if err := requireID("comment", commentID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.ValidationFailed("content is required")
	}
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateCommentContent(ctx, commentID, content)
	if err != nil {
		return nil, storeError(err, "comment not found", "failed to update comment")
	}
	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID string) (*models.Comment, error) {
	if err := requireID("comment", commentID); err != nil {
		return nil, err
	}
	comment, err := s.owned(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return nil, storeError(err, "comment not found", "failed to delete comment")
	}
	return comment, nil
}

func (s *CommentService) owned(ctx context.Context, actorID, commentID string) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "comment not found", "failed to fetch comment")
	}
	if err := ensureOwner(comment.OwnerID, actorID, "comment"); err != nil {
		return nil, err
	}
	return comment, nil
}
