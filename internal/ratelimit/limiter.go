// Package ratelimit provides per-client request rate limiting with
// interchangeable backends: a Redis-backed sliding window for multi-instance
// deployments and an in-process fixed window for single instances and tests.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a single limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the maximum number of requests permitted per window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// RetryAfter is how long the client should wait before retrying.
	// Only meaningful when Allowed is false.
	RetryAfter time.Duration
}

// Limiter constrains request rates per client key.
type Limiter interface {
	// Allow records an attempt for key and reports whether it fits within
	// limit requests per window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
