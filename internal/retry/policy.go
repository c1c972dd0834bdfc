// Package retry runs an operation a bounded number of times with a linear
// delay between attempts: the k-th retry waits k*BaseDelay.
package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Func is one attempt. attempt starts at 1.
type Func func(ctx context.Context, attempt int) error

// OnRetry is called after a failed attempt, before sleeping delay.
type OnRetry func(attempt int, delay time.Duration, err error)

// Linear returns the delay before retry k (k >= 1).
func (p Policy) Linear(k int) time.Duration {
	return time.Duration(k) * p.BaseDelay
}

// Backoff yields Linear(1), Linear(2), ... and stops after MaxAttempts-1
// delays.
func (p Policy) Backoff() goretry.Backoff {
	k := 0
	var b goretry.Backoff = goretry.BackoffFunc(func() (time.Duration, bool) {
		k++
		return p.Linear(k), false
	})
	return goretry.WithMaxRetries(uint64(p.retries()), b)
}

func (p Policy) retries() int {
	if p.MaxAttempts < 1 {
		return 0
	}
	return p.MaxAttempts - 1
}

// Do runs fn until it succeeds, the attempts are exhausted or ctx is done.
// The error of the last attempt is returned as is. onRetry may be nil.
func (p Policy) Do(ctx context.Context, fn Func, onRetry OnRetry) error {
	var (
		attempt int
		lastErr error
	)

	backoff := p.Backoff()
	notify := goretry.BackoffFunc(func() (time.Duration, bool) {
		delay, stop := backoff.Next()
		if !stop && onRetry != nil {
			onRetry(attempt, delay, lastErr)
		}
		return delay, stop
	})

	err := goretry.Do(ctx, notify, func(ctx context.Context) error {
		attempt++
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		return goretry.RetryableError(lastErr)
	})
	if ctxErr := ctx.Err(); ctxErr != nil && lastErr != nil && errors.Is(err, ctxErr) {
		return errors.Join(err, lastErr)
	}
	return err
}
