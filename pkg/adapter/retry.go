package adapter

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy controls how provider calls are retried. Any failure is
// retried: upstream errors are indistinguishable enough (timeouts, rate
// limits, malformed envelopes) that the caller's fallback path handles the
// genuinely hopeless cases after retries exhaust.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first try.
	MaxAttempts int

	// BaseDelay is the backoff before the first retry; it doubles per
	// attempt up to MaxDelay.
	BaseDelay time.Duration

	// MaxDelay caps the backoff.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the standard policy for provider calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   4 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// delay returns the backoff after the given zero-based attempt.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

type retryAdapter struct {
	inner  Adapter
	policy RetryPolicy

	// sleep is swapped out in tests for a fake clock.
	sleep func(context.Context, time.Duration) error
}

// WithRetry wraps an adapter so every Complete call is retried per policy.
func WithRetry(inner Adapter, policy RetryPolicy) Adapter {
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	return &retryAdapter{inner: inner, policy: policy, sleep: sleepContext}
}

func (r *retryAdapter) Name() string {
	return r.inner.Name()
}

func (r *retryAdapter) CostPerCall() float64 {
	return r.inner.CostPerCall()
}

func (r *retryAdapter) Complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		out, err := r.inner.Complete(ctx, system, user)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", lastErr
		}
		if attempt >= r.policy.MaxAttempts-1 {
			break
		}

		zap.L().Warn("provider call failed, retrying",
			zap.String("provider", r.inner.Name()),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		if err := r.sleep(ctx, r.policy.delay(attempt)); err != nil {
			return "", lastErr
		}
	}
	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
