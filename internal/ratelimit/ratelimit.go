// Package ratelimit implements a fixed-window request counter per client.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits for key inside the window that starts at windowStart.
type Store interface {
	Increment(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int64, error)
}

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	windowStart := l.now().Truncate(l.window)
	resetAt := windowStart.Add(l.window)

	count, err := l.store.Increment(ctx, key, windowStart, l.window)
	if err != nil {
		return Result{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAt: resetAt}, err
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
