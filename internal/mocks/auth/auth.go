// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
	"github.com/jobtracker/jobtracker-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenCodec  = (*StaticTokenCodec)(nil)
	_ ports.RateLimiter = (*MemoryRateLimiter)(nil)
)

// ErrUnknownToken is returned by StaticTokenCodec for tokens it did not issue.
var ErrUnknownToken = errors.New("unknown token")

// StaticTokenCodec maps opaque tokens to identities in memory.
// Issued tokens are "token-<userID>"; Verify accepts those and anything registered via Add.
type StaticTokenCodec struct {
	mu     sync.Mutex
	tokens map[string]domainauth.Identity

	// IssueErr, when set, is returned from Issue.
	IssueErr error
}

// NewStaticTokenCodec creates an empty codec.
func NewStaticTokenCodec() *StaticTokenCodec {
	return &StaticTokenCodec{tokens: make(map[string]domainauth.Identity)}
}

// Add registers token as carrying id.
func (c *StaticTokenCodec) Add(token string, id domainauth.Identity) *StaticTokenCodec {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[token] = id
	return c
}

func (c *StaticTokenCodec) Issue(id domainauth.Identity) (string, error) {
	if c.IssueErr != nil {
		return "", c.IssueErr
	}
	tok := "token-" + id.UserID
	c.Add(tok, id)
	return tok, nil
}

func (c *StaticTokenCodec) Verify(token string) (domainauth.Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.tokens[token]
	if !ok {
		return domainauth.Identity{}, ErrUnknownToken
	}
	return id, nil
}

// MemoryRateLimiter is a process-local fixed-window limiter for unit tests.
// The window never resets unless Reset is called.
type MemoryRateLimiter struct {
	mu     sync.Mutex
	hits   map[string]int
	Limit  int
	Window time.Duration
	// Err, when set, is returned from Allow to simulate a backend outage.
	Err error
}

// NewMemoryRateLimiter creates a limiter allowing limit hits per key.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{hits: make(map[string]int), Limit: limit, Window: window}
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	if m.Err != nil {
		return ports.RateDecision{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits[key]++
	n := m.hits[key]
	return ports.RateDecision{
		Allowed:    n <= m.Limit,
		Limit:      m.Limit,
		Remaining:  max(m.Limit-n, 0),
		RetryAfter: m.Window,
		Window:     m.Window,
	}, nil
}

// Reset clears all counters.
func (m *MemoryRateLimiter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = make(map[string]int)
}
