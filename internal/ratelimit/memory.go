package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. State does not
// survive restarts and is not shared between instances.
type MemoryLimiter struct {
	mu     sync.Mutex
	store  map[string]*memoryEntry
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewMemoryLimiter builds a limiter allowing limit requests per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		store:  make(map[string]*memoryEntry),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow consumes one slot for key and reports the decision.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.store[key]
	if !ok || now.After(entry.expiresAt) {
		l.store[key] = &memoryEntry{count: 1, expiresAt: now.Add(l.window)}
		l.sweep(now)
		return Decision{Allowed: true, Remaining: l.limit - 1}, nil
	}

	if entry.count >= l.limit {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: entry.expiresAt.Sub(now)}, nil
	}

	entry.count++
	return Decision{Allowed: true, Remaining: l.limit - entry.count}, nil
}

// sweep drops expired windows. Called under the lock on window rollover so
// the map does not grow with one key per client forever.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, entry := range l.store {
		if now.After(entry.expiresAt) {
			delete(l.store, key)
		}
	}
}
