package repositories

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresSubscriptionRepository implements SubscriptionRepository for PostgreSQL
type PostgresSubscriptionRepository struct {
	db *gorm.DB
}

// NewPostgresSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewPostgresSubscriptionRepository(db *gorm.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// SubscriptionExists checks if subscriberID is subscribed to channelID
func (r *PostgresSubscriptionRepository) SubscriptionExists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count subscription")
	}
	return count > 0, nil
}

// CreateSubscription inserts the edge or returns ErrDuplicate if it already exists
func (r *PostgresSubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = ids.New()
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(sub)
	if res.Error != nil {
		return errors.Wrap(res.Error, "create subscription")
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

// DeleteSubscription removes the edge and reports whether a row was deleted
func (r *PostgresSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete subscription")
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresSubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count subscribers")
	}
	return count, nil
}

func (r *PostgresSubscriptionRepository) GetSubscriptionsByChannel(ctx context.Context, channelID string) ([]models.Subscription, error) {
	return r.list(ctx, "channel_id = ?", channelID)
}

func (r *PostgresSubscriptionRepository) GetSubscriptionsBySubscriber(ctx context.Context, subscriberID string) ([]models.Subscription, error) {
	return r.list(ctx, "subscriber_id = ?", subscriberID)
}

func (r *PostgresSubscriptionRepository) list(ctx context.Context, where string, arg string) ([]models.Subscription, error) {
	subs := []models.Subscription{}
	if err := r.db.WithContext(ctx).Where(where, arg).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, errors.Wrap(err, "list subscriptions")
	}
	return subs, nil
}
