// Package services implements the endpoint families on top of the
// repositories, the toggle engine, the view composer and the aggregator.
package services

import (
	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/media"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/internal/stats"
	"github.com/pkg/errors"
)

// Services bundles every endpoint family
type Services struct {
	Videos        *VideoService
	Comments      *CommentService
	Tweets        *TweetService
	Playlists     *PlaylistService
	Likes         *LikeService
	Subscriptions *SubscriptionService
	Dashboard     *DashboardService
}

// New wires the services to one store. cache may be nil.
func New(store *repositories.Store, storage media.Storage, cache stats.Cache) *Services {
	var opts []stats.Option
	if cache != nil {
		opts = append(opts, stats.WithCache(cache))
	}
	aggregator := stats.New(store.Subscriptions, store.Videos, store.Likes, opts...)

	return &Services{
		Videos:        NewVideoService(store.Videos, store.Users, storage),
		Comments:      NewCommentService(store.Comments, store.Videos, store.Users),
		Tweets:        NewTweetService(store.Tweets, store.Users),
		Playlists:     NewPlaylistService(store.Playlists, store.Videos, store.Users),
		Likes:         NewLikeService(store.Likes, store.Videos, store.Comments, store.Tweets, store.Users, aggregator),
		Subscriptions: NewSubscriptionService(store.Subscriptions, store.Users, aggregator),
		Dashboard:     NewDashboardService(store.Videos, aggregator),
	}
}

func requireID(what, id string) error {
	if !ids.Valid(id) {
		return apperr.InvalidReference("invalid %s id", what)
	}
	return nil
}

func ensureOwner(ownerID, actorID, what string) error {
	if ownerID != actorID {
		return apperr.Forbidden("you are not the owner of this %s", what)
	}
	return nil
}

// storeError classifies a repository error
func storeError(err error, notFound, failure string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.NotFound("%s", notFound)
	case errors.Is(err, repositories.ErrInvalidID):
		return apperr.InvalidReference("%s", err.Error())
	default:
		return apperr.StoreFailure(err, failure)
	}
}

func pageError(err error) error {
	return apperr.InvalidPageParameters("%s", err.Error())
}

func sortError(err error) error {
	return apperr.InvalidSortField("%s", err.Error())
}

// ownerJoin resolves an owner id on L to the owner's public profile
func ownerJoin[L any](users repositories.UserRepository, name string, key func(L) string, policy compose.Policy) compose.One[L, models.User, models.OwnerProfile] {
	return compose.One[L, models.User, models.OwnerProfile]{
		Name:       name,
		LocalKey:   key,
		Fetch:      users.GetUsersByIDs,
		ForeignKey: func(u models.User) string { return u.ID },
		Project:    models.User.Profile,
		Policy:     policy,
	}
}
