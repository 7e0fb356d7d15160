package coingecko

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the polite spacing between historical-chart fetches
// against the public API.
const DefaultMinInterval = 1200 * time.Millisecond

// Limiter spaces consecutive upstream calls by a minimum interval. The next
// free slot is reserved under the lock, so concurrent callers are staggered
// rather than released together.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time

	// Injectable for tests.
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewLimiter creates a Limiter with the given minimum spacing.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the caller's reserved slot arrives. It returns early
// with the context error when ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := l.now()
	var wait time.Duration
	if now.Before(l.next) {
		wait = l.next.Sub(now)
		l.next = l.next.Add(l.interval)
	} else {
		l.next = now.Add(l.interval)
	}
	l.mu.Unlock()

	if wait > 0 {
		return l.sleep(ctx, wait)
	}
	return nil
}

// sleepContext sleeps for d unless ctx is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
