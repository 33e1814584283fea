package ephemeral

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/traveltrek/models"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter is the process-local fixed-window [RateLimiter].
// A denied request does not increment the counter.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]window
	limit   int
	period  time.Duration
	now     func() time.Time
}

func NewMemoryRateLimiter(limit int, period time.Duration) (*MemoryRateLimiter, error) {
	if limit < 1 || period <= 0 {
		return nil, ErrInvalidLimitArg
	}
	return &MemoryRateLimiter{
		windows: make(map[string]window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}, nil
}

func (l *MemoryRateLimiter) Check(_ context.Context, owner string) (models.RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[owner]

	if !ok || !now.Before(w.resetAt) {
		w = window{count: 1, resetAt: now.Add(l.period)}
		l.windows[owner] = w
		return models.RateLimitResult{Allowed: true, Remaining: l.limit - 1, ResetAt: w.resetAt}, nil
	}

	if w.count >= l.limit {
		return models.RateLimitResult{Allowed: false, Remaining: 0, ResetAt: w.resetAt}, nil
	}

	w.count++
	l.windows[owner] = w
	return models.RateLimitResult{Allowed: true, Remaining: l.limit - w.count, ResetAt: w.resetAt}, nil
}

func (l *MemoryRateLimiter) Sweep(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for owner, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, owner)
			removed++
		}
	}
	return removed, nil
}
