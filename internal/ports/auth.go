// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(id domainauth.Identity) (string, error)
}

// TokenVerifier turns a bearer token back into an identity.
type TokenVerifier interface {
	Verify(token string) (domainauth.Identity, error)
}

// TokenCodec issues and verifies identity tokens.
type TokenCodec interface {
	TokenIssuer
	TokenVerifier
}

// RateDecision is the outcome of a single rate-limit check.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is the time until the current window resets.
	RetryAfter time.Duration
	// Window is the configured window length.
	Window time.Duration
}

// RateLimiter counts hits per key within a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
