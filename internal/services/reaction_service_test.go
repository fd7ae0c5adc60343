package services

import (
	"context"
	"testing"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactToPost(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	post := f.createPost(t, alice)

	_, err := f.svc.ReactToPost(ctx, bob, post.ID, "love")
	assertValidation(t, err, "reaction")

	summary, err := f.svc.ReactToPost(ctx, bob, post.ID, "LIKE")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSummary{Likes: 1, IsLiked: true}, *summary)

	summary, err = f.svc.ReactToPost(ctx, bob, post.ID, "dislike")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSummary{Dislikes: 1, IsDisliked: true}, *summary)

	summary, err = f.svc.ReactToPost(ctx, alice, post.ID, "like")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSummary{Likes: 1, Dislikes: 1, IsLiked: true}, *summary)

	status, err := f.svc.ReactionStatus(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSummary{Likes: 1, Dislikes: 1, IsDisliked: true}, *status)

	_, err = f.svc.ReactToPost(ctx, bob, "missing", "like")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReactToCommentsAndReplies(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	post := f.createPost(t, alice)
	other := f.createPost(t, alice)

	comment, err := f.svc.AddComment(ctx, bob, post.ID, "comment")
	require.NoError(t, err)
	reply, err := f.svc.AddReply(ctx, alice, post.ID, comment.ID, "reply")
	require.NoError(t, err)

	summary, err := f.svc.ReactToComment(ctx, alice, post.ID, comment.ID, "like")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Likes)

	summary, err = f.svc.ReactToReply(ctx, bob, post.ID, comment.ID, reply.ID, "dislike")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Dislikes)

	_, err = f.svc.ReactToComment(ctx, alice, other.ID, comment.ID, "like")
	assert.ErrorIs(t, err, ErrNotFound, "comment must belong to the post in the path")

	_, err = f.svc.ReactToReply(ctx, alice, post.ID, "wrong", reply.ID, "like")
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := f.svc.comments.GetComment(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.LikeCount)
	require.Len(t, stored.Replies, 1)
	assert.Equal(t, int64(1), stored.Replies[0].DislikeCount)
}
