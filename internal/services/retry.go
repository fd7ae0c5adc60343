package services

import (
	"context"
	"time"

	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/anonto42/community-engine/pkg/metrics"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// withRetry replays fn while it fails with a retryable conflict, at most
// MaxRetries extra times
func (s *ContentService) withRetry(ctx context.Context, operation string, fn func() error) error {
	attempt := 0
	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), s.settings.MaxRetries), ctx)
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !repositories.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		metrics.TransactionRetries.WithLabelValues(operation).Inc()
		s.log.Warn("transaction conflict",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}, policy)
}
