package crawler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy retries a page operation a fixed number of times, each attempt
// bounded by its own timeout. Attempts are sequential and retried
// immediately; the wiki responds fast or not at all, so backoff buys nothing.
type RetryPolicy struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	Logger         *zap.Logger
}

// NewRetryPolicy builds the reference policy: 3 attempts of 10s each.
func NewRetryPolicy(logger *zap.Logger) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    DefaultNavAttempts,
		AttemptTimeout: DefaultNavTimeout,
		Logger:         logger,
	}
}

// Do runs op until it succeeds or the attempt budget is spent. Every attempt
// gets a fresh timeout context; failed attempts are logged with their ordinal
// and triggering error. When the budget is exhausted the last error is
// returned as-is so callers see the real failure, not a wrapper.
func (p RetryPolicy) Do(ctx context.Context, label string, op func(context.Context) error) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		logger.Info("attempt started",
			zap.String("op", label),
			zap.Int("attempt", attempt),
		)
		totalNavigations.Inc()
		if attempt > 1 {
			totalRetries.Inc()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.AttemptTimeout)
		err := op(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			// The run itself is over; further attempts would all fail the
			// same way.
			break
		}
		if attempt < p.MaxAttempts {
			logger.Info("attempt failed, pending retry",
				zap.String("op", label),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
	}

	totalNavigationFailures.Inc()
	logger.Error("all attempts failed",
		zap.String("op", label),
		zap.Int("attempts", p.MaxAttempts),
		zap.Error(lastErr),
	)
	return lastErr
}
