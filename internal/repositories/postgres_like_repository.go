package repositories

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) edge(ctx context.Context, userID string, target models.Target) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Like{}).
		Where("liked_by = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID)
}

// LikeExists checks if a user has liked the target
func (r *PostgresLikeRepository) LikeExists(ctx context.Context, userID string, target models.Target) (bool, error) {
	var count int64
	if err := r.edge(ctx, userID, target).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count like")
	}
	return count > 0, nil
}

// CreateLike inserts the edge. The unique index on (liked_by, target_kind, target_id)
// turns a concurrent duplicate into ErrDuplicate.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if like.ID == "" {
		like.ID = ids.New()
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return errors.Wrap(res.Error, "create like")
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

// DeleteLike removes the edge and reports whether a row was deleted
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("liked_by = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete like")
	}
	return res.RowsAffected > 0, nil
}

// GetLikesByUser lists a user's likes of one kind, most recent first
func (r *PostgresLikeRepository) GetLikesByUser(ctx context.Context, userID string, kind models.TargetKind) ([]models.Like, error) {
	likes := []models.Like{}
	err := r.db.WithContext(ctx).
		Where("liked_by = ? AND target_kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, errors.Wrap(err, "get likes by user")
	}
	return likes, nil
}

// CountLikes counts likes of kind pointing at any of targetIDs
func (r *PostgresLikeRepository) CountLikes(ctx context.Context, kind models.TargetKind, targetIDs []string) (int64, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("target_kind = ? AND target_id IN ?", kind, targetIDs).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count likes")
	}
	return count, nil
}
