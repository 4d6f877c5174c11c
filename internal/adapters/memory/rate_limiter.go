// Package memory provides process-local adapters used when no shared store is available.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jobtracker/jobtracker-api/internal/ports"
)

var _ ports.RateLimiter = (*RateLimiter)(nil)

// RateLimiterOptions configures a RateLimiter.
type RateLimiterOptions struct {
	Limit  int
	Window time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type window struct {
	hits    int
	resetAt time.Time
}

// RateLimiter is a fixed-window hit counter held in process memory. Counters are
// not shared between replicas.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	window    time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewRateLimiter creates an in-process fixed-window rate limiter.
func NewRateLimiter(opts RateLimiterOptions) (*RateLimiter, error) {
	if opts.Limit < 1 {
		return nil, errors.New("rate limit must be positive")
	}
	if opts.Window <= 0 {
		return nil, errors.New("rate limit window must be positive")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   opts.Limit,
		window:  opts.Window,
		now:     now,
	}, nil
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	if key == "" {
		return ports.RateDecision{}, errors.New("rate limit key cannot be empty")
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	w.hits++

	return ports.RateDecision{
		Allowed:    w.hits <= l.limit,
		Limit:      l.limit,
		Remaining:  max(l.limit-w.hits, 0),
		RetryAfter: w.resetAt.Sub(now),
		Window:     l.window,
	}, nil
}

// Clear drops every counter and returns how many were removed.
func (l *RateLimiter) Clear(context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.windows)
	l.windows = make(map[string]*window)
	return n, nil
}

// sweep drops expired windows at most once per window length. Caller holds mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
	l.nextSweep = now.Add(l.window)
}

// Len returns the number of tracked keys.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
