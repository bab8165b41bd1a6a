package server

import (
	"sync"
	"time"

	"github.com/hay-kot/tempbox/pkg/kv"
)

// pruneThreshold is the number of tracked clients above which stale
// windows are dropped on the next Allow.
const pruneThreshold = 1024

type window struct {
	key   string
	start time.Time
	count int
}

// RateLimiter is a fixed-window counter per client key.
type RateLimiter struct {
	mu     sync.Mutex
	hits   *kv.Store[string, window]
	limit  int
	window time.Duration
	clock  func() time.Time
}

// NewRateLimiter allows limit requests per key in each window.
func NewRateLimiter(limit int, per time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:   kv.New[string, window](),
		limit:  limit,
		window: per,
		clock:  time.Now,
	}
}

// Allow counts a request for key and reports whether it is within budget.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if l.hits.Len() > pruneThreshold {
		l.prune(now)
	}

	w, ok := l.hits.Get(key)
	if !ok || now.Sub(w.start) >= l.window {
		w = window{key: key, start: now}
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	l.hits.Set(key, w)
	return true
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	return l.hits.Len()
}

// prune drops windows that have ended. Callers hold l.mu.
func (l *RateLimiter) prune(now time.Time) {
	stale := l.hits.Filter(func(w window) bool {
		return now.Sub(w.start) >= l.window
	})
	keys := make([]string, len(stale))
	for i, w := range stale {
		keys[i] = w.key
	}
	l.hits.DeleteBatch(keys)
}
