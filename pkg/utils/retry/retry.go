package retry

import (
	"context"
	"errors"
	"time"
)

// ErrRetry marks an error as transient. Blocking tries again on errors wrapping it.
var ErrRetry = errors.New("retry")

// Backoff waits before the next attempt. It returns ctx.Err() when ctx is done while waiting.
type Backoff func(context.Context) error

func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1, 0)
}

// ExponentialBackoff waits initialInterval first, then r times longer on each call.
//
// When limit is positive, the interval does not exceed it.
func ExponentialBackoff(initialInterval time.Duration, r float64, limit time.Duration) Backoff {
	interval := initialInterval
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			interval = time.Duration(float64(interval) * r)
			if 0 < limit && limit < interval {
				interval = limit
			}
			return nil
		}
	}
}

// Blocking calls f until it succeeds or returns an error not wrapping ErrRetry.
//
// b is waited between attempts, not before the first one.
// When b fails, Blocking returns the last error of f joined with the error of b.
func Blocking[T any](ctx context.Context, b Backoff, f func() (T, error)) (T, error) {
	for {
		last, err := f()
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrRetry) {
			return last, err
		}
		if berr := b(ctx); berr != nil {
			return last, errors.Join(err, berr)
		}
	}
}
