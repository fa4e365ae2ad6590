package server

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-key counter guarding the PDF render
// endpoint, which is by far the most expensive request the server takes.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	counts  map[string]int
	started map[string]time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		counts:  make(map[string]int),
		started: make(map[string]time.Time),
	}
}

func (r *rateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	if started, ok := r.started[key]; !ok || now.Sub(started) > r.window {
		r.prune(now)
		r.started[key] = now
		r.counts[key] = 0
	}
	if r.counts[key] >= r.limit {
		return false
	}
	r.counts[key]++
	return true
}

// prune drops expired windows so idle keys do not accumulate. Called with the
// lock held, on window rollover only.
func (r *rateLimiter) prune(now time.Time) {
	for key, started := range r.started {
		if now.Sub(started) > r.window {
			delete(r.started, key)
			delete(r.counts, key)
		}
	}
}
