// Package retry wraps github.com/cenkalti/backoff/v4 into the small, explicit
// policy the fetcher needs: a fixed attempt budget and a delay that grows
// linearly with the attempt number.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// Notify is called before each wait with the failure that caused it,
// the number of the attempt that failed (1-based) and the upcoming delay.
type Notify func(err error, attempt int, delay time.Duration)

// Policy retries an operation up to MaxAttempts times in total. The wait after
// the k-th failed attempt is BaseDelay*k.
//
// Example:
//
//	p := retry.NewPolicy(3, 2*time.Second)
//	err := p.Do(ctx, func(ctx context.Context) error {
//	    page, err = provider.SearchPage(ctx, req)
//	    return err
//	}, nil)
type Policy struct {
	maxAttempts int
	baseDelay   time.Duration
	newTimer    func() backoff.Timer
}

// NewPolicy builds a policy. Non-positive arguments fall back to the defaults.
func NewPolicy(maxAttempts int, baseDelay time.Duration) Policy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return Policy{maxAttempts: maxAttempts, baseDelay: baseDelay}
}

// WithTimer returns a copy of the policy that waits on timers produced by
// newTimer instead of real ones.
func (p Policy) WithTimer(newTimer func() backoff.Timer) Policy {
	p.newTimer = newTimer
	return p
}

func (p Policy) MaxAttempts() int {
	return p.maxAttempts
}

// Delay returns the wait that follows the given failed attempt.
func (p Policy) Delay(attempt int) time.Duration {
	return p.baseDelay * time.Duration(attempt)
}

// Do runs op until it succeeds, the attempt budget is spent, ctx is done or op
// returns an error wrapped with Permanent. The last error is returned.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error, notify Notify) error {
	lb := &linearBackOff{base: p.baseDelay}
	b := backoff.WithContext(backoff.WithMaxRetries(lb, uint64(p.maxAttempts-1)), ctx)

	var timer backoff.Timer
	if p.newTimer != nil {
		timer = p.newTimer()
	}

	var n backoff.Notify
	if notify != nil {
		n = func(err error, delay time.Duration) {
			notify(err, lb.attempt, delay)
		}
	}

	return backoff.RetryNotifyWithTimer(func() error {
		return op(ctx)
	}, b, n, timer)
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// linearBackOff yields base, 2*base, 3*base, ...
type linearBackOff struct {
	base    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.base * time.Duration(b.attempt)
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}
