package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/anonto42/community-engine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransitions(t *testing.T) {
	steps := []struct {
		action models.ReactionAction
		want   models.ReactionSummary
	}{
		{models.ActionLike, models.ReactionSummary{Likes: 1, IsLiked: true}},
		{models.ActionLike, models.ReactionSummary{}},
		{models.ActionLike, models.ReactionSummary{Likes: 1, IsLiked: true}},
		{models.ActionDislike, models.ReactionSummary{Dislikes: 1, IsDisliked: true}},
		{models.ActionUnlike, models.ReactionSummary{Dislikes: 1, IsDisliked: true}},
		{models.ActionUndislike, models.ReactionSummary{}},
		{models.ActionUndislike, models.ReactionSummary{}},
		{models.ActionDislike, models.ReactionSummary{Dislikes: 1, IsDisliked: true}},
		{models.ActionDislike, models.ReactionSummary{}},
	}

	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	post := testutil.SeedPost(t, db, "author")
	subject := models.Subject{Type: models.SubjectPost, ID: post.ID}

	for i, step := range steps {
		summary, err := repo.Apply(context.Background(), subject, "u1", step.action, baseTime)
		require.NoError(t, err)
		assert.Equal(t, step.want, *summary, "step %d: %s", i, step.action)
	}
}

func TestApplyKeepsCountersInSync(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	ctx := context.Background()
	post := testutil.SeedPost(t, db, "author")
	subject := models.Subject{Type: models.SubjectPost, ID: post.ID}

	for _, user := range []string{"u1", "u2", "u3"} {
		_, err := repo.Apply(ctx, subject, user, models.ActionLike, baseTime)
		require.NoError(t, err)
	}
	summary, err := repo.Apply(ctx, subject, "u3", models.ActionDislike, baseTime)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Likes)
	assert.Equal(t, int64(1), summary.Dislikes)

	var stored models.Post
	require.NoError(t, db.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, int64(2), stored.LikeCount)
	assert.Equal(t, int64(1), stored.DislikeCount)

	var rows int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("user_id = ?", "u3").Count(&rows).Error)
	assert.Equal(t, int64(1), rows, "a user holds at most one reaction per subject")

	status, err := repo.Summary(ctx, subject, "u3")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSummary{Likes: 2, Dislikes: 1, IsDisliked: true}, *status)
}

func TestApplyOnMissingSubjects(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	ctx := context.Background()

	_, err := repo.Apply(ctx, models.Subject{Type: models.SubjectComment, ID: "missing"}, "u1", models.ActionLike, baseTime)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	hidden := testutil.SeedPost(t, db, "author", func(p *models.Post) { p.IsActive = false })
	_, err = repo.Apply(ctx, models.Subject{Type: models.SubjectPost, ID: hidden.ID}, "u1", models.ActionLike, baseTime)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestApplyConcurrentTogglesBySameUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	post := testutil.SeedPost(t, db, "author")
	subject := models.Subject{Type: models.SubjectPost, ID: post.ID}

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		action := models.ActionLike
		if i%2 == 1 {
			action = models.ActionDislike
		}
		wg.Add(1)
		go func(action models.ReactionAction) {
			defer wg.Done()
			_, err := repo.Apply(context.Background(), subject, "u1", action, baseTime)
			assert.NoError(t, err)
		}(action)
	}
	wg.Wait()

	var reactions []models.Reaction
	require.NoError(t, db.Where("subject_type = ? AND subject_id = ? AND user_id = ?", subject.Type, subject.ID, "u1").
		Find(&reactions).Error)
	assert.LessOrEqual(t, len(reactions), 1, "a user never holds both a like and a dislike")

	var stored models.Post
	require.NoError(t, db.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, int64(len(reactions)), stored.LikeCount+stored.DislikeCount)

	summary, err := repo.Summary(context.Background(), subject, "u1")
	require.NoError(t, err)
	assert.Equal(t, stored.LikeCount, summary.Likes)
	assert.Equal(t, stored.DislikeCount, summary.Dislikes)
	assert.False(t, summary.IsLiked && summary.IsDisliked)
}

func TestApplyConcurrentLikesByManyUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	post := testutil.SeedPost(t, db, "author")
	subject := models.Subject{Type: models.SubjectPost, ID: post.ID}

	const users = 10
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			_, err := repo.Apply(context.Background(), subject, user, models.ActionLike, baseTime)
			assert.NoError(t, err)
		}(fmt.Sprintf("u%d", i))
	}
	wg.Wait()

	var stored models.Post
	require.NoError(t, db.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, int64(users), stored.LikeCount)
	assert.Zero(t, stored.DislikeCount)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, repositories.IsRetryable(repositories.ErrConflict))
	assert.False(t, repositories.IsRetryable(repositories.ErrNotFound))
	assert.False(t, repositories.IsRetryable(nil))
}
