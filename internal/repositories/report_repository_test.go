package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/anonto42/community-engine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReport(postID, reporter string) *models.Report {
	return &models.Report{PostID: postID, ReporterID: reporter, Reason: "spam", ReportedAt: baseTime}
}

func TestCreateReportDeactivatesAtThreshold(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReportRepository(db)
	ctx := context.Background()
	post := testutil.SeedPost(t, db, "author")

	for i := 1; i <= 2; i++ {
		outcome, err := repo.CreateReport(ctx, newReport(post.ID, fmt.Sprintf("u%d", i)), 3)
		require.NoError(t, err)
		assert.Equal(t, models.ReportOutcome{ReportCount: int64(i)}, *outcome)
	}

	outcome, err := repo.CreateReport(ctx, newReport(post.ID, "u3"), 3)
	require.NoError(t, err)
	assert.Equal(t, models.ReportOutcome{ReportCount: 3, Deactivated: true}, *outcome)

	var stored models.Post
	require.NoError(t, db.Where("id = ?", post.ID).Take(&stored).Error)
	assert.False(t, stored.IsActive)
	assert.True(t, stored.IsReported)

	_, err = repo.CreateReport(ctx, newReport(post.ID, "u4"), 3)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	count, err := repo.CountReports(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCreateReportRejectsDuplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReportRepository(db)
	ctx := context.Background()
	post := testutil.SeedPost(t, db, "author")

	_, err := repo.CreateReport(ctx, newReport(post.ID, "u1"), 5)
	require.NoError(t, err)

	_, err = repo.CreateReport(ctx, newReport(post.ID, "u1"), 5)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	count, err := repo.CountReports(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateReportMissingPost(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReportRepository(db)

	_, err := repo.CreateReport(context.Background(), newReport("missing", "u1"), 5)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreateReportConcurrentThreshold(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReportRepository(db)
	post := testutil.SeedPost(t, db, "author")

	const (
		threshold = 3
		reporters = 8
	)
	var (
		wg          sync.WaitGroup
		accepted    atomic.Int32
		deactivated atomic.Int32
		hidden      atomic.Int32
	)
	for i := 0; i < reporters; i++ {
		wg.Add(1)
		go func(reporter string) {
			defer wg.Done()
			outcome, err := repo.CreateReport(context.Background(), newReport(post.ID, reporter), threshold)
			if err != nil {
				assert.ErrorIs(t, err, repositories.ErrNotFound)
				hidden.Add(1)
				return
			}
			accepted.Add(1)
			if outcome.Deactivated {
				deactivated.Add(1)
				assert.Equal(t, int64(threshold), outcome.ReportCount)
			}
		}(fmt.Sprintf("u%d", i))
	}
	wg.Wait()

	assert.Equal(t, int32(threshold), accepted.Load())
	assert.Equal(t, int32(1), deactivated.Load(), "the post is hidden exactly once")
	assert.Equal(t, int32(reporters-threshold), hidden.Load())

	count, err := repo.CountReports(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(threshold), count)

	var stored models.Post
	require.NoError(t, db.Where("id = ?", post.ID).Take(&stored).Error)
	assert.False(t, stored.IsActive)
	assert.True(t, stored.IsReported)
}

func TestCreateReportConcurrentDuplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresReportRepository(db)
	post := testutil.SeedPost(t, db, "author")

	const attempts = 6
	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateReport(context.Background(), newReport(post.ID, "u1"), 5)
			if err != nil {
				assert.ErrorIs(t, err, repositories.ErrDuplicate)
				return
			}
			accepted.Add(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	count, err := repo.CountReports(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
