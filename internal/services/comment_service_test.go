package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentValidation(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	post := f.createPost(t, alice)

	_, err := f.svc.AddComment(ctx, bob, post.ID, "  ")
	assertValidation(t, err, "content")

	_, err = f.svc.AddComment(ctx, bob, post.ID, strings.Repeat("a", 1001))
	assertValidation(t, err, "content")

	comment, err := f.svc.AddComment(ctx, bob, post.ID, strings.Repeat("a", 1000))
	require.NoError(t, err)

	_, err = f.svc.AddReply(ctx, alice, post.ID, comment.ID, strings.Repeat("a", 501))
	assertValidation(t, err, "content")

	_, err = f.svc.AddComment(ctx, bob, "missing", "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepliesNestOnlyOneLevel(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	post := f.createPost(t, alice)

	comment, err := f.svc.AddComment(ctx, bob, post.ID, "comment")
	require.NoError(t, err)
	reply, err := f.svc.AddReply(ctx, alice, post.ID, comment.ID, "reply")
	require.NoError(t, err)
	assert.Equal(t, comment.ID, reply.CommentID)

	_, err = f.svc.AddReply(ctx, bob, post.ID, reply.ID, "reply to reply")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndDeleteComments(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	post := f.createPost(t, alice)

	comment, err := f.svc.AddComment(ctx, bob, post.ID, "comment")
	require.NoError(t, err)
	reply, err := f.svc.AddReply(ctx, alice, post.ID, comment.ID, "reply")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)

	_, err = f.svc.UpdateComment(ctx, alice, post.ID, comment.ID, "hijack")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.UpdateComment(ctx, bob, post.ID, comment.ID, " edited ")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.True(t, f.clock.Now().Equal(updated.UpdatedAt))

	updatedReply, err := f.svc.UpdateReply(ctx, admin, post.ID, comment.ID, reply.ID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updatedReply.Content)

	_, err = f.svc.UpdateReply(ctx, alice, post.ID, "wrong", reply.ID, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.svc.DeleteReply(ctx, bob, post.ID, comment.ID, reply.ID), ErrForbidden)
	assert.ErrorIs(t, f.svc.DeleteComment(ctx, alice, post.ID, comment.ID), ErrForbidden)
	require.NoError(t, f.svc.DeleteComment(ctx, bob, post.ID, comment.ID))

	page, err := f.svc.ListComments(ctx, post.ID, models.CommentQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Comments)

	assert.ErrorIs(t, f.svc.DeleteReply(ctx, alice, post.ID, comment.ID, reply.ID), ErrNotFound)
}

func TestListComments(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	post := f.createPost(t, alice)

	var ids []string
	for i := 0; i < 5; i++ {
		c, err := f.svc.AddComment(ctx, bob, post.ID, "comment")
		require.NoError(t, err)
		ids = append(ids, c.ID)
		f.clock.Advance(time.Second)
	}

	page, err := f.svc.ListComments(ctx, post.ID, models.CommentQuery{Page: 2, Limit: 2, Order: "desc"})
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, ids[2], page.Comments[0].ID)
	assert.Equal(t, ids[1], page.Comments[1].ID)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 2, Total: 5, Pages: 3}, page.Pagination)
	assert.NotNil(t, page.Comments[0].Replies)

	page, err = f.svc.ListComments(ctx, post.ID, models.CommentQuery{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, ids[0], page.Comments[0].ID, "ascending by default")

	_, err = f.svc.ListComments(ctx, post.ID, models.CommentQuery{Order: "sideways"})
	assertValidation(t, err, "order")

	_, err = f.svc.ListComments(ctx, "missing", models.CommentQuery{})
	assert.ErrorIs(t, err, ErrNotFound)
}
