// Package retry wraps transient-failure-prone calls with bounded retries.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how Do spaces its attempts.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	// Exponential doubles the delay after every failed attempt.
	Exponential bool
}

// Do runs fn until it succeeds or the policy is exhausted. Context
// cancellation aborts the wait between attempts but never interrupts a
// running fn.
func Do(ctx context.Context, p Policy, fn func() error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= p.Attempts {
			break
		}

		delay := p.BaseDelay
		if p.Exponential {
			delay = p.BaseDelay << (attempt - 1)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", p.Attempts, err)
}
