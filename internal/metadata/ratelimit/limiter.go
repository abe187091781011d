// Package ratelimit paces catalog queries per source, independently of how
// many items are being resolved in parallel.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between queries to the same source.
// Different sources never block each other.
type Limiter struct {
	interval time.Duration

	mu     sync.Mutex
	nextAt map[string]time.Time
}

// New creates a Limiter allowing one query per source every interval. A zero
// or negative interval disables pacing.
func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		nextAt:   make(map[string]time.Time),
	}
}

// Wait blocks until the source's next query slot, or until ctx is done. It
// reserves the slot before sleeping, so concurrent callers queue up fairly.
func (l *Limiter) Wait(ctx context.Context, source string) error {
	if l.interval <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	now := time.Now()
	at := l.nextAt[source]
	if at.Before(now) {
		at = now
	}
	l.nextAt[source] = at.Add(l.interval)
	l.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
