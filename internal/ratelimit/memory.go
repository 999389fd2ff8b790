package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter implements Limiter with an in-process fixed window per key.
// Counts are not shared across server instances; it suits single-instance
// deployments and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow
	now     func() time.Time
}

type fixedWindow struct {
	start time.Time
	count int
}

// NewMemoryLimiter creates an in-process rate limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Ensure MemoryLimiter implements Limiter
var _ Limiter = (*MemoryLimiter)(nil)

// Allow implements Limiter.Allow
func (l *MemoryLimiter) Allow(
	_ context.Context,
	key string,
	limit int,
	window time.Duration,
) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= window {
		w = &fixedWindow{start: now}
		l.windows[key] = w
	}

	if w.count < limit {
		w.count++
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - w.count,
		}, nil
	}

	return &Result{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		RetryAfter: w.start.Add(window).Sub(now),
	}, nil
}
