package services

import (
	"errors"
	"strconv"
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/media"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishInput(title string) PublishVideoInput {
	return PublishVideoInput{
		Title:         title,
		Description:   "about " + title,
		VideoPath:     "/tmp/" + title + ".mp4",
		ThumbnailPath: "/tmp/" + title + ".png",
	}
}

func TestPublishVideo(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")

	video, err := f.svc.Videos.PublishVideo(f.ctx, owner, publishInput("intro"))
	require.NoError(t, err)

	assert.True(t, ids.Valid(video.ID))
	assert.Equal(t, owner, video.OwnerID)
	assert.Equal(t, 42.0, video.Duration)
	assert.True(t, video.IsPublished)
	assert.Len(t, f.storage.keys(), 2)
}

func TestPublishVideoValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")

	in := publishInput("x")
	in.Title = "   "
	_, err := f.svc.Videos.PublishVideo(f.ctx, owner, in)
	requireKind(t, err, apperr.KindValidationFailed)

	in = publishInput("x")
	in.ThumbnailPath = ""
	_, err = f.svc.Videos.PublishVideo(f.ctx, owner, in)
	requireKind(t, err, apperr.KindValidationFailed)

	assert.Zero(t, f.storage.uploadCount)
}

func TestPublishVideoRollsBackOnThumbnailFailure(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	f.storage.uploadErr[media.FolderThumbnails] = errors.New("quota exceeded")

	_, err := f.svc.Videos.PublishVideo(f.ctx, owner, publishInput("intro"))
	requireKind(t, err, apperr.KindStoreFailure)

	assert.Empty(t, f.storage.keys(), "uploaded video file is deleted again")
	videos, err := f.mem.FindVideos(f.ctx, models.VideoFilter{})
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestUpdateVideoThumbnail(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	video, err := f.svc.Videos.PublishVideo(f.ctx, owner, publishInput("intro"))
	require.NoError(t, err)

	updated, err := f.svc.Videos.UpdateVideo(f.ctx, owner, video.ID, UpdateVideoInput{ThumbnailPath: "/tmp/new.png"})
	require.NoError(t, err)

	assert.NotEqual(t, video.Thumbnail.StorageID, updated.Thumbnail.StorageID)
	assert.Equal(t, video.Title, updated.Title)
	assert.ElementsMatch(t, []string{video.VideoFile.StorageID, updated.Thumbnail.StorageID}, f.storage.keys())
}

func TestUpdateVideoRollsBackWhenOldThumbnailDeleteFails(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	video, err := f.svc.Videos.PublishVideo(f.ctx, owner, publishInput("intro"))
	require.NoError(t, err)
	f.storage.deleteErr[video.Thumbnail.StorageID] = errors.New("permission denied")

	_, err = f.svc.Videos.UpdateVideo(f.ctx, owner, video.ID, UpdateVideoInput{
		Title:         "renamed",
		ThumbnailPath: "/tmp/new.png",
	})
	requireKind(t, err, apperr.KindStoreFailure)

	assert.ElementsMatch(t, []string{video.VideoFile.StorageID, video.Thumbnail.StorageID}, f.storage.keys(),
		"new thumbnail removed, originals kept")

	stored, err := f.mem.GetVideoByID(f.ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "intro", stored.Title)
}

func TestUpdateVideoRules(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	stranger := f.user(t, "mallory")
	video := f.video(t, owner, "intro")

	_, err := f.svc.Videos.UpdateVideo(f.ctx, owner, video.ID, UpdateVideoInput{})
	requireKind(t, err, apperr.KindValidationFailed)

	_, err = f.svc.Videos.UpdateVideo(f.ctx, stranger, video.ID, UpdateVideoInput{Title: "mine now"})
	requireKind(t, err, apperr.KindForbidden)

	_, err = f.svc.Videos.UpdateVideo(f.ctx, owner, ids.New(), UpdateVideoInput{Title: "x"})
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.svc.Videos.UpdateVideo(f.ctx, owner, "not-an-id", UpdateVideoInput{Title: "x"})
	requireKind(t, err, apperr.KindInvalidReference)

	updated, err := f.svc.Videos.UpdateVideo(f.ctx, owner, video.ID, UpdateVideoInput{Description: "new words"})
	require.NoError(t, err)
	assert.Equal(t, "intro", updated.Title)
	assert.Equal(t, "new words", updated.Description)
}

func TestDeleteVideoRemovesObjects(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	video, err := f.svc.Videos.PublishVideo(f.ctx, owner, publishInput("intro"))
	require.NoError(t, err)

	_, err = f.svc.Videos.DeleteVideo(f.ctx, f.user(t, "bob"), video.ID)
	requireKind(t, err, apperr.KindForbidden)

	deleted, err := f.svc.Videos.DeleteVideo(f.ctx, owner, video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.ID, deleted.ID)
	assert.Empty(t, f.storage.keys())

	_, err = f.svc.Videos.GetVideoByID(f.ctx, video.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestDeleteVideoSurvivesStorageFailure(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	video, err := f.svc.Videos.PublishVideo(f.ctx, owner, publishInput("intro"))
	require.NoError(t, err)
	f.storage.deleteErr[video.VideoFile.StorageID] = errors.New("timeout")

	_, err = f.svc.Videos.DeleteVideo(f.ctx, owner, video.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{video.VideoFile.StorageID}, f.storage.keys())
}

func TestTogglePublishStatus(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	video := f.video(t, owner, "intro")

	updated, err := f.svc.Videos.TogglePublishStatus(f.ctx, owner, video.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)

	updated, err = f.svc.Videos.TogglePublishStatus(f.ctx, owner, video.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
}

func TestGetVideoByIDEmbedsOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	video := f.video(t, owner, "intro")

	view, err := f.svc.Videos.GetVideoByID(f.ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Owner.Username)
	assert.Equal(t, owner, view.Owner.ID)

	f.mem.DeleteUser(owner)
	_, err = f.svc.Videos.GetVideoByID(f.ctx, video.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestListVideosPaginationMatchesComposedRows(t *testing.T) {
	f := newFixture(t)
	alice, bob, gone := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "gone")
	for i := 0; i < 12; i++ {
		owner := []string{alice, bob, gone}[i%3]
		f.video(t, owner, "clip "+strconv.Itoa(i))
	}
	f.mem.DeleteUser(gone)

	var seen []string
	for page := 1; ; page++ {
		result, err := f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{Page: strconv.Itoa(page), Limit: "3"})
		require.NoError(t, err)
		assert.Equal(t, 8, result.TotalItems, "orphaned videos are not counted")
		assert.Equal(t, 3, result.TotalPages)
		for _, v := range result.Items {
			assert.NotEqual(t, gone, v.Owner.ID)
			seen = append(seen, v.ID)
		}
		if !result.HasNextPage {
			break
		}
	}

	assert.Len(t, seen, 8)
	unique := make(map[string]bool)
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 8)
}

func TestListVideosFiltersAndSorts(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	a := f.video(t, alice, "Go basics")
	b := f.video(t, alice, "Advanced go")
	f.video(t, bob, "Cooking")
	f.mem.SetViews(a.ID, 500)
	f.mem.SetViews(b.ID, 20)

	result, err := f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{Query: "GO", SortBy: "views", SortType: "asc"})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, b.ID, result.Items[0].ID)
	assert.Equal(t, a.ID, result.Items[1].ID)

	result, err = f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{UserID: bob})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Cooking", result.Items[0].Title)

	result, err = f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{Page: "9"})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 3, result.TotalItems)
}

func TestListVideosRejectsBadParameters(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{SortBy: "password"})
	requireKind(t, err, apperr.KindInvalidSortField)

	_, err = f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{SortType: "up"})
	requireKind(t, err, apperr.KindInvalidSortField)

	_, err = f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{Limit: "500"})
	requireKind(t, err, apperr.KindInvalidPageParameters)

	_, err = f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{Page: "first"})
	requireKind(t, err, apperr.KindInvalidPageParameters)

	_, err = f.svc.Videos.ListVideos(f.ctx, ListVideosQuery{UserID: "42"})
	requireKind(t, err, apperr.KindInvalidReference)
}
