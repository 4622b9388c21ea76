package services

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/internal/stats"
	"github.com/anonto42/nano-tube/backend/internal/toggle"
)

// subscriptionEdges adapts SubscriptionRepository to the toggle engine; the edge is the channel id
type subscriptionEdges struct {
	repo repositories.SubscriptionRepository
}

func (e subscriptionEdges) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	return e.repo.SubscriptionExists(ctx, subscriberID, channelID)
}

func (e subscriptionEdges) Insert(ctx context.Context, subscriberID, channelID string) error {
	return e.repo.CreateSubscription(ctx, &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID})
}

func (e subscriptionEdges) Remove(ctx context.Context, subscriberID, channelID string) (bool, error) {
	return e.repo.DeleteSubscription(ctx, subscriberID, channelID)
}

// SubscriptionService handles channel subscriptions
type SubscriptionService struct {
	subscriptions repositories.SubscriptionRepository
	users         repositories.UserRepository
	stats         *stats.Aggregator
	engine        *toggle.Engine[string]
}

func NewSubscriptionService(subs repositories.SubscriptionRepository, users repositories.UserRepository, aggregator *stats.Aggregator) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subs,
		users:         users,
		stats:         aggregator,
		engine:        toggle.New[string]("subscription", subscriptionEdges{repo: subs}, func(id string) string { return id }),
	}
}

// ToggleSubscription subscribes the actor to the channel or unsubscribes them
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, actorID, channelID string) (*models.ToggleSubscriptionResult, error) {
	if err := requireID("user", actorID); err != nil {
		return nil, err
	}
	if err := requireID("channel", channelID); err != nil {
		return nil, err
	}
	if actorID == channelID {
		return nil, apperr.ValidationFailed("you cannot subscribe to your own channel")
	}
	if _, err := s.users.GetUserByID(ctx, channelID); err != nil {
		return nil, storeError(err, "channel not found", "failed to fetch channel")
	}

	subscribed, err := s.engine.Toggle(ctx, actorID, channelID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to toggle subscription")
	}
	s.stats.Invalidate(ctx, channelID)
	return &models.ToggleSubscriptionResult{IsSubscribed: subscribed}, nil
}

// GetChannelSubscribers lists the profiles subscribed to the channel
func (s *SubscriptionService) GetChannelSubscribers(ctx context.Context, channelID string) ([]models.OwnerProfile, error) {
	if err := requireID("channel", channelID); err != nil {
		return nil, err
	}
	subs, err := s.subscriptions.GetSubscriptionsByChannel(ctx, channelID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch subscribers")
	}
	return s.profiles(ctx, subs, "subscription.subscriber", func(sub models.Subscription) string { return sub.SubscriberID })
}

// GetSubscribedChannels lists the channels the subscriber follows
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID string) ([]models.OwnerProfile, error) {
	if err := requireID("subscriber", subscriberID); err != nil {
		return nil, err
	}
	subs, err := s.subscriptions.GetSubscriptionsBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch subscribed channels")
	}
	return s.profiles(ctx, subs, "subscription.channel", func(sub models.Subscription) string { return sub.ChannelID })
}

func (s *SubscriptionService) profiles(ctx context.Context, subs []models.Subscription, name string, key func(models.Subscription) string) ([]models.OwnerProfile, error) {
	out, err := compose.JoinOne(ctx, subs, ownerJoin(s.users, name, key, compose.Inner),
		func(_ models.Subscription, p *models.OwnerProfile) models.OwnerProfile { return *p })
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch profiles")
	}
	return out, nil
}
