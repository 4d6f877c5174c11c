// Package redis provides Redis-backed adapters for the jobtracker API.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtracker/jobtracker-api/internal/ports"
)

const rateLimitNamespace = "ratelimit:"

var _ ports.RateLimiter = (*RateLimiter)(nil)

// RateLimiterOptions configures a RateLimiter.
type RateLimiterOptions struct {
	Limit  int
	Window time.Duration
	// Prefix namespaces keys, e.g. "jobtracker:".
	Prefix string
}

// RateLimiter is a fixed-window hit counter. The first hit in a window creates the
// key with a TTL of one window; every hit increments it.
type RateLimiter struct {
	client redis.UniversalClient
	limit  int
	window time.Duration
	prefix string
}

// NewRateLimiter creates a Redis-based fixed-window rate limiter.
func NewRateLimiter(client redis.UniversalClient, opts RateLimiterOptions) (*RateLimiter, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.Limit < 1 {
		return nil, errors.New("rate limit must be positive")
	}
	if opts.Window <= 0 {
		return nil, errors.New("rate limit window must be positive")
	}
	return &RateLimiter{
		client: client,
		limit:  opts.Limit,
		window: opts.Window,
		prefix: opts.Prefix + rateLimitNamespace,
	}, nil
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	if key == "" {
		return ports.RateDecision{}, errors.New("rate limit key cannot be empty")
	}
	rkey := l.prefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, rkey)
	pttl := pipe.PTTL(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return ports.RateDecision{}, fmt.Errorf("redis incr: %w", err)
	}

	hits := incr.Val()
	ttl := pttl.Val()
	if ttl <= 0 {
		// New window, or a key that lost its expiry.
		if err := l.client.PExpire(ctx, rkey, l.window).Err(); err != nil {
			return ports.RateDecision{}, fmt.Errorf("redis pexpire: %w", err)
		}
		ttl = l.window
	}

	remaining := max(l.limit-int(hits), 0)
	return ports.RateDecision{
		Allowed:    hits <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: ttl,
		Window:     l.window,
	}, nil
}

// Clear deletes every counter under this limiter's prefix and returns how many were removed.
func (l *RateLimiter) Clear(ctx context.Context) (int, error) {
	match := l.prefix + "*"

	if cc, ok := l.client.(*redis.ClusterClient); ok {
		var total atomic.Int64
		err := cc.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			n, err := clearMatching(ctx, node, match)
			total.Add(int64(n))
			return err
		})
		return int(total.Load()), err
	}
	return clearMatching(ctx, l.client, match)
}

func clearMatching(ctx context.Context, c redis.Cmdable, match string) (int, error) {
	var deleted int
	iter := c.Scan(ctx, 0, match, 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis del: %w", err)
		}
		deleted += int(n)
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis scan: %w", err)
	}
	return deleted, nil
}
