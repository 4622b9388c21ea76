package services

import (
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserTweetsSorting(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	old, err := f.svc.Tweets.CreateTweet(f.ctx, alice, "old")
	require.NoError(t, err)
	recent, err := f.svc.Tweets.CreateTweet(f.ctx, alice, "recent")
	require.NoError(t, err)
	_, err = f.svc.Tweets.UpdateTweet(f.ctx, alice, old.ID, "old, edited")
	require.NoError(t, err)

	tweets, err := f.svc.Tweets.GetUserTweets(f.ctx, alice, "", "")
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, recent.ID, tweets[0].ID)

	tweets, err = f.svc.Tweets.GetUserTweets(f.ctx, alice, "updatedAt", "desc")
	require.NoError(t, err)
	assert.Equal(t, old.ID, tweets[0].ID)
	assert.Equal(t, "old, edited", tweets[0].Content)
	assert.Equal(t, "alice", tweets[0].Owner.Username)

	_, err = f.svc.Tweets.GetUserTweets(f.ctx, alice, "likes", "")
	requireKind(t, err, apperr.KindInvalidSortField)
}

func TestGetUserTweetsEmpty(t *testing.T) {
	f := newFixture(t)

	tweets, err := f.svc.Tweets.GetUserTweets(f.ctx, f.user(t, "quiet"), "", "")
	require.NoError(t, err)
	assert.NotNil(t, tweets)
	assert.Empty(t, tweets)
}

func TestTweetOwnership(t *testing.T) {
	f := newFixture(t)
	alice, mallory := f.user(t, "alice"), f.user(t, "mallory")
	tweet, err := f.svc.Tweets.CreateTweet(f.ctx, alice, "hello")
	require.NoError(t, err)

	_, err = f.svc.Tweets.UpdateTweet(f.ctx, mallory, tweet.ID, "hijacked")
	requireKind(t, err, apperr.KindForbidden)
	_, err = f.svc.Tweets.DeleteTweet(f.ctx, mallory, tweet.ID)
	requireKind(t, err, apperr.KindForbidden)

	_, err = f.svc.Tweets.CreateTweet(f.ctx, alice, "")
	requireKind(t, err, apperr.KindValidationFailed)

	deleted, err := f.svc.Tweets.DeleteTweet(f.ctx, alice, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, tweet.ID, deleted.ID)
}
