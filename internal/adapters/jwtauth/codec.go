// Package jwtauth issues and verifies the HS256 bearer tokens that carry caller identity.
package jwtauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Config holds configuration for the Codec.
type Config struct {
	Secret []byte
	// Lifetime is the default validity used by Issue.
	Lifetime time.Duration
	// TestUserID is the read-only demo account. Empty disables the restriction.
	TestUserID string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Codec signs and verifies identity tokens with a shared secret.
type Codec struct {
	secret     []byte
	lifetime   time.Duration
	testUserID string
	now        func() time.Time
}

// NewCodec creates a Codec. The secret must be non-empty.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Codec{
		secret:     cfg.Secret,
		lifetime:   cfg.Lifetime,
		testUserID: strings.TrimSpace(cfg.TestUserID),
		now:        cfg.Now,
	}, nil
}

// Issue signs a token for id valid for the configured lifetime.
func (c *Codec) Issue(id domainauth.Identity) (string, error) {
	return c.IssueTTL(id, c.lifetime)
}

// IssueTTL signs a token for id valid for ttl.
func (c *Codec) IssueTTL(id domainauth.Identity, ttl time.Duration) (string, error) {
	if strings.TrimSpace(id.UserID) == "" {
		return "", errors.New("user id is required")
	}
	now := c.now()
	claims := Claims{
		UserID: id.UserID,
		Name:   id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, and expiry of token and returns the identity it carries.
// Every failure is reported as ErrInvalidToken; the underlying reason is wrapped for logging.
func (c *Codec) Verify(token string) (domainauth.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.UserID) == "" {
		return domainauth.Identity{}, ErrInvalidToken
	}

	return domainauth.Identity{
		UserID:     claims.UserID,
		Name:       claims.Name,
		Restricted: c.IsRestricted(claims.UserID),
	}, nil
}

// IsRestricted reports whether userID is the read-only demo account.
func (c *Codec) IsRestricted(userID string) bool {
	return c.testUserID != "" && userID == c.testUserID
}
