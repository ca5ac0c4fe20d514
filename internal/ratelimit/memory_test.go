package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterCountsWithinWindow(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(ctx, "track:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 2-i, decision.Remaining)
	}

	decision, err := limiter.Allow(ctx, "track:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Zero(t, decision.Remaining)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, decision.RetryAfter, time.Minute)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "track:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := limiter.Allow(ctx, "track:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.Allow(ctx, "track:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestMemoryLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	decision, err := limiter.Allow(ctx, "track:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = limiter.Allow(ctx, "track:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)

	current = current.Add(61 * time.Second)

	decision, err = limiter.Allow(ctx, "track:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestMemoryLimiterSweepDropsExpiredKeys(t *testing.T) {
	limiter := NewMemoryLimiter(5, time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
	}

	current = current.Add(2 * time.Minute)
	_, err := limiter.Allow(ctx, "d")
	require.NoError(t, err)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.store, 1)
}
