// Package retry applies a bounded fixed-delay retry policy to an operation.
package retry

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// Policy bounds a retry loop: a fixed number of attempts with a fixed wait
// between them. The delay is linear, not exponential.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Do invokes op until it succeeds, the policy is exhausted, or ctx is
// canceled. The wait between attempts honors ctx so a canceled run never
// sits out a retry sleep. When every attempt fails, the last error is
// returned.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	// Factor 1 keeps the delay fixed across attempts.
	delay := &backoff.Backoff{Min: p.Delay, Max: p.Delay, Factor: 1}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay.Duration()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
