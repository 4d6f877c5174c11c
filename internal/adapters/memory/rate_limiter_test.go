package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, limit int) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	l, err := NewRateLimiter(RateLimiterOptions{Limit: limit, Window: 15 * time.Minute, Now: clock.Now})
	require.NoError(t, err)
	return l, clock
}

func TestNewRateLimiter_Validation(t *testing.T) {
	_, err := NewRateLimiter(RateLimiterOptions{Limit: 0, Window: time.Minute})
	require.Error(t, err)

	_, err = NewRateLimiter(RateLimiterOptions{Limit: 1})
	require.Error(t, err)
}

func TestRateLimiter_Allow(t *testing.T) {
	l, clock := newTestLimiter(t, 2)
	ctx := context.Background()

	d, err := l.Allow(ctx, "198.51.100.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Limit)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, 15*time.Minute, d.RetryAfter)
	assert.Equal(t, 15*time.Minute, d.Window)

	clock.Advance(5 * time.Minute)
	d, err = l.Allow(ctx, "198.51.100.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = l.Allow(ctx, "198.51.100.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 10*time.Minute, d.RetryAfter)

	other, err := l.Allow(ctx, "198.51.100.5")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "keys are counted separately")

	clock.Advance(10 * time.Minute)
	d, err = l.Allow(ctx, "198.51.100.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "a new window starts once the old one expires")
	assert.Equal(t, 1, d.Remaining)
}

func TestRateLimiter_EmptyKey(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	_, err := l.Allow(context.Background(), "")
	require.Error(t, err)
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	l, clock := newTestLimiter(t, 5)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		_, err := l.Allow(ctx, k)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.Len())

	clock.Advance(16 * time.Minute)
	_, err := l.Allow(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestRateLimiter_Clear(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	d, _ := l.Allow(ctx, "a")
	assert.False(t, d.Allowed)

	n, err := l.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	d, err = l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
