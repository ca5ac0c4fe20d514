// Package ratelimit provides fixed-window request limiting behind a small
// interface so the backing store can be swapped. The Redis implementation
// keeps the quota consistent across server instances; the in-memory one is
// process-local and suits tests and single-node development.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one quota check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter answers whether a keyed caller may proceed within the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
