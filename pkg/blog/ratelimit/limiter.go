// Package ratelimit provides fixed-window counters used to throttle comment
// creation per actor.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultWindow is used when a limiter is created with a non-positive window.
const DefaultWindow = time.Minute

// Decision is the result of counting one hit against a key.
type Decision struct {
	Allowed   bool
	Count     int
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the window resets, never negative.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || !d.ResetAt.After(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// Limiter counts hits per key within a window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int) Decision
}

// InMemoryLimiter is a process-local fixed-window limiter.
type InMemoryLimiter struct {
	mu     sync.Mutex
	window time.Duration
	items  map[string]entry
	now    func() time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// NewInMemory creates a limiter with the given window.
func NewInMemory(window time.Duration) *InMemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &InMemoryLimiter{
		window: window,
		items:  make(map[string]entry),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source; used by tests.
func (l *InMemoryLimiter) WithClock(now func() time.Time) *InMemoryLimiter {
	l.now = now
	return l
}

// Window returns the configured window length.
func (l *InMemoryLimiter) Window() time.Duration {
	return l.window
}

func (l *InMemoryLimiter) Allow(_ context.Context, key string, limit int) Decision {
	if limit <= 0 {
		limit = 1
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanup(now)
	curr, ok := l.items[key]
	if !ok || !now.Before(curr.resetAt) {
		curr = entry{resetAt: now.Add(l.window)}
	}
	curr.count++
	l.items[key] = curr
	return decide(curr.count, limit, curr.resetAt)
}

func (l *InMemoryLimiter) cleanup(now time.Time) {
	for k, v := range l.items {
		if !now.Before(v.resetAt) {
			delete(l.items, k)
		}
	}
}

func decide(count, limit int, resetAt time.Time) Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= limit,
		Count:     count,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
