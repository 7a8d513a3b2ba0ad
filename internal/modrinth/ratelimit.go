package modrinth

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a token bucket that refills completely once per window.
// The API reports its own view of the budget in response headers, which
// takes precedence over local bookkeeping.
type RateLimiter struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:      limit,
		window:     window,
		tokens:     limit,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(r.lastRefill)
	if elapsed >= r.window {
		r.tokens = r.limit
		r.lastRefill = now
	}

	if r.tokens <= 0 {
		wait := r.window - elapsed
		r.mu.Unlock()

		select {
		case <-time.After(wait):
			r.mu.Lock()
			r.tokens = r.limit
			r.lastRefill = time.Now()
		case <-ctx.Done():
			r.mu.Lock()
			return ctx.Err()
		}
	}

	r.tokens--
	return nil
}

// Remaining returns the number of requests left in the current window.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens
}

// UpdateFromHeaders adopts the budget the API reports in X-RateLimit
// headers. Values above the configured limit are clamped.
func (r *RateLimiter) UpdateFromHeaders(headers http.Header) {
	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if n, err := strconv.Atoi(remaining); err == nil && n >= 0 {
			r.mu.Lock()
			if n > r.limit {
				n = r.limit
			}
			r.tokens = n
			r.mu.Unlock()
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if timestamp, err := strconv.ParseInt(reset, 10, 64); err == nil {
			resetTime := time.Unix(timestamp, 0)
			r.mu.Lock()
			if resetTime.After(r.lastRefill) {
				r.lastRefill = resetTime.Add(-r.window)
			}
			r.mu.Unlock()
		}
	}
}
