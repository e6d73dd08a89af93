package security

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a request exceeds the rate limit.
var ErrRateLimited = errors.New("security: rate limit exceeded")

// RateLimiter implements per-key sliding window rate limiting. Each key
// (typically a client IP) gets its own bucket tracking timestamps of recent
// events within the window.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	window  time.Duration
	limit   int
	now     func() time.Time
}

type bucket struct {
	events []time.Time
}

// NewRateLimiter creates a limiter allowing `limit` events per `window`
// per key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		window:  window,
		limit:   limit,
		now:     time.Now,
	}
}

// Allow checks whether an event for key is allowed. Returns nil if allowed,
// ErrRateLimited if the key's limit is exceeded.
func (rl *RateLimiter) Allow(key string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{}
		rl.buckets[key] = b
	}

	now := rl.now()
	b.evict(now, rl.window)

	if len(b.events) >= rl.limit {
		return ErrRateLimited
	}

	b.events = append(b.events, now)
	return nil
}

// evict removes events outside the sliding window.
func (b *bucket) evict(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	// Events are chronologically ordered; find the first inside the window.
	i := 0
	for i < len(b.events) && b.events[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		b.events = b.events[i:]
	}
}
