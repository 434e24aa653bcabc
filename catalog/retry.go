package catalog

import (
	"context"
	"time"
)

const defaultMaxDelay = 5 * time.Second

// Retry runs a lookup up to Attempts+1 times with exponential backoff
// starting at Delay and capped at MaxDelay.
type Retry struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
}

func (r Retry) Do(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= r.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		if attempt > 0 {
			timer := time.NewTimer(r.backoff(attempt))
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return lastErr
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (r Retry) backoff(attempt int) time.Duration {
	maxDelay := r.MaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultMaxDelay
	}
	delay := r.Delay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
