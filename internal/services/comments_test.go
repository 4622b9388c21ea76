package services

import (
	"strconv"
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVideoCommentsPages(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	video := f.video(t, alice, "intro")
	for i := 0; i < 5; i++ {
		_, err := f.svc.Comments.AddComment(f.ctx, bob, video.ID, "comment "+strconv.Itoa(i))
		require.NoError(t, err)
	}

	page, err := f.svc.Comments.ListVideoComments(f.ctx, video.ID, "2", "2")
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "comment 2", page.Items[0].Content)
	assert.Equal(t, "bob", page.Items[0].Owner.Username)
}

func TestListVideoCommentsErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Comments.ListVideoComments(f.ctx, ids.New(), "", "")
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.svc.Comments.ListVideoComments(f.ctx, "video", "", "")
	requireKind(t, err, apperr.KindInvalidReference)

	video := f.video(t, f.user(t, "alice"), "intro")
	_, err = f.svc.Comments.ListVideoComments(f.ctx, video.ID, "0", "")
	requireKind(t, err, apperr.KindInvalidPageParameters)

	page, err := f.svc.Comments.ListVideoComments(f.ctx, video.ID, "", "")
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Zero(t, page.TotalItems)
}

func TestCommentOwnership(t *testing.T) {
	f := newFixture(t)
	alice, mallory := f.user(t, "alice"), f.user(t, "mallory")
	video := f.video(t, alice, "intro")
	comment, err := f.svc.Comments.AddComment(f.ctx, alice, video.ID, "  nice  ")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)

	_, err = f.svc.Comments.UpdateComment(f.ctx, mallory, comment.ID, "spam")
	requireKind(t, err, apperr.KindForbidden)
	_, err = f.svc.Comments.DeleteComment(f.ctx, mallory, comment.ID)
	requireKind(t, err, apperr.KindForbidden)

	_, err = f.svc.Comments.UpdateComment(f.ctx, alice, comment.ID, "   ")
	requireKind(t, err, apperr.KindValidationFailed)

	updated, err := f.svc.Comments.UpdateComment(f.ctx, alice, comment.ID, "great")
	require.NoError(t, err)
	assert.Equal(t, "great", updated.Content)

	_, err = f.svc.Comments.DeleteComment(f.ctx, alice, comment.ID)
	require.NoError(t, err)
	_, err = f.svc.Comments.DeleteComment(f.ctx, alice, comment.ID)
	requireKind(t, err, apperr.KindNotFound)
}
