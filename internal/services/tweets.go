package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
)

var tweetSorter = compose.NewSorter("createdAt", map[string]func(a, b models.Tweet) int{
	"createdAt": compose.ByTime(func(t models.Tweet) time.Time { return t.CreatedAt }),
	"updatedAt": compose.ByTime(func(t models.Tweet) time.Time { return t.UpdatedAt }),
})

// TweetService handles short text posts
type TweetService struct {
	tweets repositories.TweetRepository
	users  repositories.UserRepository
}

func NewTweetService(tweets repositories.TweetRepository, users repositories.UserRepository) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func (s *TweetService) CreateTweet(ctx context.Context, actorID, content string) (*models.Tweet, error) {
	if err := requireID("user", actorID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.ValidationFailed("content is required")
	}

	tweet := &models.Tweet{OwnerID: actorID, Content: content}
	if err := s.tweets.CreateTweet(ctx, tweet); err != nil {
		return nil, apperr.StoreFailure(err, "failed to create tweet")
	}
	return tweet, nil
}

// GetUserTweets lists a user's tweets with the owner embedded. No tweets is an empty list.
func (s *TweetService) GetUserTweets(ctx context.Context, userID, sortBy, sortType string) ([]models.TweetView, error) {
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	order, err := tweetSorter.Parse(sortBy, sortType)
	if err != nil {
		return nil, sortError(err)
	}

	tweets, err := s.tweets.GetTweetsByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch tweets")
	}
	tweetSorter.Sort(tweets, order)

	join := ownerJoin(s.users, "tweet.owner", func(t models.Tweet) string { return t.OwnerID }, compose.Inner)
	views, err := compose.JoinOne(ctx, tweets, join, func(t models.Tweet, owner *models.OwnerProfile) models.TweetView {
		return t.View(*owner)
	})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch tweet owners")
	}
	return views, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, actorID, tweetID, content string) (*models.Tweet, error) {
	if err := requireID("tweet", tweetID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.ValidationFailed("content is required")
	}
	if _, err := s.owned(ctx, actorID, tweetID); err != nil {
		return nil, err
	}

	updated, err := s.tweets.UpdateTweetContent(ctx, tweetID, content)
	if err != nil {
		return nil, storeError(err, "tweet not found", "failed to update tweet")
	}
	return updated, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, actorID, tweetID string) (*models.Tweet, error) {
	if err := requireID("tweet", tweetID); err != nil {
		return nil, err
	}
	tweet, err := s.owned(ctx, actorID, tweetID)
	if err != nil {
		return nil, err
	}
	if err := s.tweets.DeleteTweet(ctx, tweetID); err != nil {
		return nil, storeError(err, "tweet not found", "failed to delete tweet")
	}
	return tweet, nil
}

func (s *TweetService) owned(ctx context.Context, actorID, tweetID string) (*models.Tweet, error) {
	tweet, err := s.tweets.GetTweetByID(ctx, tweetID)
	if err != nil {
		return nil, storeError(err, "tweet not found", "failed to fetch tweet")
	}
	if err := ensureOwner(tweet.OwnerID, actorID, "tweet"); err != nil {
		return nil, err
	}
	return tweet, nil
}
