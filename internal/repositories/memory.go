package repositories

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/models"
)

type likeKey struct {
	user   string
	target models.Target
}

type subscriptionKey struct {
	subscriber string
	channel    string
}

// MemoryStore implements every repository in process memory. Unique edge
// constraints are enforced under the store mutex, matching the PostgreSQL indexes.
type MemoryStore struct {
	mu   sync.RWMutex
	last time.Time

	users         map[string]models.User
	videos        map[string]models.Video
	comments      map[string]models.Comment
	tweets        map[string]models.Tweet
	playlists     map[string]models.Playlist
	likes         map[likeKey]models.Like
	subscriptions map[subscriptionKey]models.Subscription
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]models.User),
		videos:        make(map[string]models.Video),
		comments:      make(map[string]models.Comment),
		tweets:        make(map[string]models.Tweet),
		playlists:     make(map[string]models.Playlist),
		likes:         make(map[likeKey]models.Like),
		subscriptions: make(map[subscriptionKey]models.Subscription),
	}
}

// Repositories exposes the store through the repository interfaces
func (s *MemoryStore) Repositories() *Store {
	return &Store{
		Users:         s,
		Videos:        s,
		Comments:      s,
		Tweets:        s,
		Playlists:     s,
		Likes:         s,
		Subscriptions: s,
	}
}

// tick returns a strictly increasing timestamp so creation order is total. Callers hold mu.
func (s *MemoryStore) tick() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	slices.SortFunc(items, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
	return items
}

func checkID(id string) error {
	if !ids.Valid(id) {
		return ErrInvalidID
	}
	return nil
}

// --- users ---

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = ids.New()
	}
	for _, u := range s.users {
		if u.ID == user.ID || u.Username == user.Username {
			return ErrDuplicate
		}
		if user.FirebaseUID != nil && u.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return ErrDuplicate
		}
	}
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUsersByIDs(_ context.Context, list []string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	seen := make(map[string]bool, len(list))
	for _, id := range list {
		if u, ok := s.users[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, u)
		}
	}
	return out, nil
}

// DeleteUser removes a profile. Only the memory driver supports it; tests use it
// to produce dangling owner references.
func (s *MemoryStore) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// --- videos ---

func (s *MemoryStore) CreateVideo(_ context.Context, video *models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	video.ID = ids.New()
	video.CreatedAt = s.tick()
	video.UpdatedAt = video.CreatedAt
	s.videos[video.ID] = *video
	return nil
}

func (s *MemoryStore) GetVideoByID(_ context.Context, id string) (*models.Video, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (s *MemoryStore) GetVideosByIDs(_ context.Context, list []string) ([]models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Video{}
	seen := make(map[string]bool, len(list))
	for _, id := range list {
		if v, ok := s.videos[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindVideos(_ context.Context, filter models.VideoFilter) ([]models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	out := []models.Video{}
	for _, v := range s.videos {
		if filter.OwnerID != "" && v.OwnerID != filter.OwnerID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(v.Title), query) &&
			!strings.Contains(strings.ToLower(v.Description), query) {
			continue
		}
		out = append(out, v)
	}
	return sortNewestFirst(out, func(v models.Video) time.Time { return v.CreatedAt }), nil
}

func (s *MemoryStore) UpdateVideo(_ context.Context, id string, update models.VideoUpdate) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Title != nil {
		v.Title = *update.Title
	}
	if update.Description != nil {
		v.Description = *update.Description
	}
	if update.Thumbnail != nil {
		v.Thumbnail = *update.Thumbnail
	}
	v.UpdatedAt = s.tick()
	s.videos[id] = v
	return &v, nil
}

func (s *MemoryStore) TogglePublish(_ context.Context, id string) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = s.tick()
	s.videos[id] = v
	return &v, nil
}

func (s *MemoryStore) DeleteVideo(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[id]; !ok {
		return ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func (s *MemoryStore) VideoTotalsByOwner(_ context.Context, ownerID string) (models.VideoTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals models.VideoTotals
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			totals.Videos++
			totals.Views += v.Views
		}
	}
	return totals, nil
}

func (s *MemoryStore) VideoIDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []string{}
	for id, v := range s.videos {
		if v.OwnerID == ownerID {
			out = append(out, id)
		}
	}
	return out, nil
}

// SetViews overwrites a video's view counter, which the service layer never writes
func (s *MemoryStore) SetViews(id string, views int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		v.Views = views
		s.videos[id] = v
	}
}

// --- comments ---

func (s *MemoryStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = ids.New()
	comment.CreatedAt = s.tick()
	comment.UpdatedAt = comment.CreatedAt
	s.comments[comment.ID] = *comment
	return nil
}

func (s *MemoryStore) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) GetCommentsByVideoID(_ context.Context, videoID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Comment{}
	for _, c := range s.comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	return sortNewestFirst(out, func(c models.Comment) time.Time { return c.CreatedAt }), nil
}

func (s *MemoryStore) UpdateCommentContent(_ context.Context, id, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = s.tick()
	s.comments[id] = c
	return &c, nil
}

func (s *MemoryStore) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// --- tweets ---

func (s *MemoryStore) CreateTweet(_ context.Context, tweet *models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tweet.ID = ids.New()
	tweet.CreatedAt = s.tick()
	tweet.UpdatedAt = tweet.CreatedAt
	s.tweets[tweet.ID] = *tweet
	return nil
}

func (s *MemoryStore) GetTweetByID(_ context.Context, id string) (*models.Tweet, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tweets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) GetTweetsByOwner(_ context.Context, ownerID string) ([]models.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Tweet{}
	for _, t := range s.tweets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return sortNewestFirst(out, func(t models.Tweet) time.Time { return t.CreatedAt }), nil
}

func (s *MemoryStore) UpdateTweetContent(_ context.Context, id, content string) (*models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tweets[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Content = content
	t.UpdatedAt = s.tick()
	s.tweets[id] = t
	return &t, nil
}

func (s *MemoryStore) DeleteTweet(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tweets[id]; !ok {
		return ErrNotFound
	}
	delete(s.tweets, id)
	return nil
}

// --- playlists ---

func clonePlaylist(p models.Playlist) *models.Playlist {
	p.VideoIDs = slices.Clone(p.VideoIDs)
	if p.VideoIDs == nil {
		p.VideoIDs = []string{}
	}
	return &p
}

func (s *MemoryStore) CreatePlaylist(_ context.Context, playlist *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist.ID = ids.New()
	playlist.CreatedAt = s.tick()
	playlist.UpdatedAt = playlist.CreatedAt
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []string{}
	}
	s.playlists[playlist.ID] = *clonePlaylist(*playlist)
	return nil
}

func (s *MemoryStore) GetPlaylistByID(_ context.Context, id string) (*models.Playlist, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.playlists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePlaylist(p), nil
}

func (s *MemoryStore) GetPlaylistsByOwner(_ context.Context, ownerID string) ([]models.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Playlist{}
	for _, p := range s.playlists {
		if p.OwnerID == ownerID {
			out = append(out, *clonePlaylist(p))
		}
	}
	return sortNewestFirst(out, func(p models.Playlist) time.Time { return p.CreatedAt }), nil
}

func (s *MemoryStore) updatePlaylist(id string, mutate func(p *models.Playlist)) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.playlists[id]
	if !ok {
		return nil, ErrNotFound
	}
	mutate(&p)
	p.UpdatedAt = s.tick()
	s.playlists[id] = p
	return clonePlaylist(p), nil
}

func (s *MemoryStore) UpdatePlaylist(_ context.Context, id string, update models.PlaylistUpdate) (*models.Playlist, error) {
	return s.updatePlaylist(id, func(p *models.Playlist) {
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
	})
}

func (s *MemoryStore) AppendVideo(_ context.Context, id, videoID string) (*models.Playlist, error) {
	return s.updatePlaylist(id, func(p *models.Playlist) {
		p.VideoIDs = append(slices.Clone(p.VideoIDs), videoID)
	})
}

func (s *MemoryStore) RemoveVideo(_ context.Context, id, videoID string) (*models.Playlist, error) {
	return s.updatePlaylist(id, func(p *models.Playlist) {
		p.VideoIDs = slices.DeleteFunc(slices.Clone(p.VideoIDs), func(v string) bool { return v == videoID })
	})
}

func (s *MemoryStore) DeletePlaylist(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.playlists[id]; !ok {
		return ErrNotFound
	}
	delete(s.playlists, id)
	return nil
}

// --- likes ---

func (s *MemoryStore) LikeExists(_ context.Context, userID string, target models.Target) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[likeKey{user: userID, target: target}]
	return ok, nil
}

func (s *MemoryStore) CreateLike(_ context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{user: like.LikedBy, target: like.Target}
	if _, ok := s.likes[key]; ok {
		return ErrDuplicate
	}
	if like.ID == "" {
		like.ID = ids.New()
	}
	like.CreatedAt = s.tick()
	s.likes[key] = *like
	return nil
}

func (s *MemoryStore) DeleteLike(_ context.Context, userID string, target models.Target) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{user: userID, target: target}
	if _, ok := s.likes[key]; !ok {
		return false, nil
	}
	delete(s.likes, key)
	return true, nil
}

func (s *MemoryStore) GetLikesByUser(_ context.Context, userID string, kind models.TargetKind) ([]models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Like{}
	for k, l := range s.likes {
		if k.user == userID && k.target.Kind == kind {
			out = append(out, l)
		}
	}
	return sortNewestFirst(out, func(l models.Like) time.Time { return l.CreatedAt }), nil
}

func (s *MemoryStore) CountLikes(_ context.Context, kind models.TargetKind, targetIDs []string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		wanted[id] = true
	}
	var n int64
	for k := range s.likes {
		if k.target.Kind == kind && wanted[k.target.ID] {
			n++
		}
	}
	return n, nil
}

// --- subscriptions ---

func (s *MemoryStore) SubscriptionExists(_ context.Context, subscriberID, channelID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.subscriptions[subscriptionKey{subscriber: subscriberID, channel: channelID}]
	return ok, nil
}

func (s *MemoryStore) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{subscriber: sub.SubscriberID, channel: sub.ChannelID}
	if _, ok := s.subscriptions[key]; ok {
		return ErrDuplicate
	}
	if sub.ID == "" {
		sub.ID = ids.New()
	}
	sub.CreatedAt = s.tick()
	s.subscriptions[key] = *sub
	return nil
}

func (s *MemoryStore) DeleteSubscription(_ context.Context, subscriberID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{subscriber: subscriberID, channel: channelID}
	if _, ok := s.subscriptions[key]; !ok {
		return false, nil
	}
	delete(s.subscriptions, key)
	return true, nil
}

func (s *MemoryStore) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for k := range s.subscriptions {
		if k.channel == channelID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) GetSubscriptionsByChannel(_ context.Context, channelID string) ([]models.Subscription, error) {
	return s.listSubscriptions(func(k subscriptionKey) bool { return k.channel == channelID }), nil
}

func (s *MemoryStore) GetSubscriptionsBySubscriber(_ context.Context, subscriberID string) ([]models.Subscription, error) {
	return s.listSubscriptions(func(k subscriptionKey) bool { return k.subscriber == subscriberID }), nil
}

func (s *MemoryStore) listSubscriptions(match func(subscriptionKey) bool) []models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Subscription{}
	for k, sub := range s.subscriptions {
		if match(k) {
			out = append(out, sub)
		}
	}
	return sortNewestFirst(out, func(s models.Subscription) time.Time { return s.CreatedAt })
}
