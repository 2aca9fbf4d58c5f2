package pipeline

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for retryable pipeline
// operations: 100ms, 250ms, 500ms.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{100 * time.Millisecond, 250 * time.Millisecond, 500 * time.Millisecond}
}

// RetryPolicy retries an operation with fixed backoff delays. An operation
// runs len(Delays)+1 times at most; the Retryable predicate decides which
// errors are worth another attempt.
type RetryPolicy struct {
	Delays    []time.Duration
	Retryable func(error) bool
}

// Do runs fn until it succeeds, returns a non-retryable error, or attempts
// are exhausted. The context is checked before each sleep.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	maxAttempts := len(p.Delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delays[attempt]):
		}
	}

	return lastErr
}
