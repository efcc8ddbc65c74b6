package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_FixedWindow(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 3, time.Minute)
	base := time.Date(2026, 1, 1, 10, 0, 5, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Date(2026, 1, 1, 10, 1, 0, 0, time.UTC), res.ResetAt)

	other, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "clients are counted independently")

	limiter.now = func() time.Time { return base.Add(time.Minute) }
	res, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "a new window resets the counter")
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Time, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func TestLimiter_FailsOpen(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 1, time.Minute)

	res, err := limiter.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryStore_EvictsFinishedWindows(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	old := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i <= 10000; i++ {
		_, err := store.Increment(ctx, fmt.Sprintf("10.0.%d.%d", i/256, i%256), old, time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, 10001, store.Len())

	_, err := store.Increment(ctx, "fresh", old.Add(time.Minute), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
