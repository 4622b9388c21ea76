package services

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// racingSubscriptions holds every existence check until n callers have made one
type racingSubscriptions struct {
	repositories.SubscriptionRepository
	wg *sync.WaitGroup
}

func (r racingSubscriptions) SubscriptionExists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	exists, err := r.SubscriptionRepository.SubscriptionExists(ctx, subscriberID, channelID)
	r.wg.Done()
	r.wg.Wait()
	return exists, err
}

func TestToggleSubscriptionAlternates(t *testing.T) {
	f := newFixture(t)
	channel, fan := f.user(t, "alice"), f.user(t, "bob")

	for _, want := range []bool{true, false, true} {
		res, err := f.svc.Subscriptions.ToggleSubscription(f.ctx, fan, channel)
		require.NoError(t, err)
		assert.Equal(t, want, res.IsSubscribed)
	}

	subscribers, err := f.svc.Subscriptions.GetChannelSubscribers(f.ctx, channel)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "bob", subscribers[0].Username)

	channels, err := f.svc.Subscriptions.GetSubscribedChannels(f.ctx, fan)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channel, channels[0].ID)
}

func TestConcurrentSubscribeCreatesOneEdge(t *testing.T) {
	f := newFixture(t)
	channel, fan := f.user(t, "alice"), f.user(t, "bob")

	const callers = 2
	var barrier sync.WaitGroup
	barrier.Add(callers)
	repo := racingSubscriptions{SubscriptionRepository: f.mem, wg: &barrier}

	results := make([]bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		// one service per caller, as two server instances would be
		svc := NewSubscriptionService(repo, f.mem, stats.New(f.mem, f.mem, f.mem))
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.ToggleSubscription(f.ctx, fan, channel)
			if assert.NoError(t, err) {
				results[i] = res.IsSubscribed
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []bool{true, true}, results)
	n, err := f.mem.CountSubscribers(f.ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestToggleSubscriptionRules(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.svc.Subscriptions.ToggleSubscription(f.ctx, alice, alice)
	requireKind(t, err, apperr.KindValidationFailed)

	_, err = f.svc.Subscriptions.ToggleSubscription(f.ctx, alice, ids.New())
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.svc.Subscriptions.ToggleSubscription(f.ctx, alice, "channel")
	requireKind(t, err, apperr.KindInvalidReference)
}

func TestSubscriberListsSkipDeletedProfiles(t *testing.T) {
	f := newFixture(t)
	channel, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	for _, fan := range []string{bob, carol} {
		_, err := f.svc.Subscriptions.ToggleSubscription(f.ctx, fan, channel)
		require.NoError(t, err)
	}
	f.mem.DeleteUser(bob)

	subscribers, err := f.svc.Subscriptions.GetChannelSubscribers(f.ctx, channel)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, carol, subscribers[0].ID)

	none, err := f.svc.Subscriptions.GetSubscribedChannels(f.ctx, channel)
	require.NoError(t, err)
	assert.Empty(t, none)
}
