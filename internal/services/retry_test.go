package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestWithRetry(t *testing.T) {
	svc := &ContentService{log: zaptest.NewLogger(t), settings: Settings{MaxRetries: 3}}
	ctx := context.Background()

	t.Run("replays conflicts", func(t *testing.T) {
		calls := 0
		err := svc.withRetry(ctx, "test", func() error {
			calls++
			if calls < 3 {
				return repositories.ErrConflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := svc.withRetry(ctx, "test", func() error {
			calls++
			return repositories.ErrConflict
		})
		assert.ErrorIs(t, err, repositories.ErrConflict)
		assert.Equal(t, 4, calls)
	})

	t.Run("does not replay other errors", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := svc.withRetry(ctx, "test", func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
