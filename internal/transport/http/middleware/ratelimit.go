package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/alphasourceai/upload-portal/internal/domain"
)

// RateLimiter enforces at most max requests per client IP within a sliding
// window. Each client keeps the timestamps of its recent requests; stale
// timestamps are pruned on every check, so a burst that filled the window
// becomes admissible again exactly one window after its first request.
type RateLimiter struct {
	mu      sync.Mutex
	seen    map[string][]time.Time
	max     int
	window  time.Duration
	now     func() time.Time
	cleaned time.Time
}

// NewRateLimiter creates a per-IP sliding-window limiter.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	recent := rl.seen[key][:0]
	for _, t := range rl.seen[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= rl.max {
		rl.seen[key] = recent
		return false
	}
	rl.seen[key] = append(recent, now)

	// Opportunistically drop clients whose whole window has lapsed.
	if now.Sub(rl.cleaned) > rl.window {
		for k, ts := range rl.seen {
			if k != key && (len(ts) == 0 || !ts[len(ts)-1].After(cutoff)) {
				delete(rl.seen, k)
			}
		}
		rl.cleaned = now
	}
	return true
}

// Limit is the middleware handler enforcing the limit per client IP.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(RealIP(r)) {
			writeJSONError(w, domain.ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
