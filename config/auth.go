package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const defaultTokenLifetime = 24 * time.Hour

// Lifetime is a token lifetime that accepts Go durations ("12h") and day
// notation ("30d").
type Lifetime time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for Lifetime.
func (l *Lifetime) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	if v == "" {
		*l = Lifetime(defaultTokenLifetime)
		return nil
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid Lifetime: %q (expected e.g. 30d or 12h)", v)
		}
		*l = Lifetime(time.Duration(n) * 24 * time.Hour)
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid Lifetime: %q (expected e.g. 30d or 12h)", v)
	}
	*l = Lifetime(d)
	return nil
}

// Duration returns the lifetime as a time.Duration.
func (l Lifetime) Duration() time.Duration { return time.Duration(l) }

// AuthConfig groups token signing configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC key used to sign and verify bearer tokens.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// JWTLifetime is how long an issued token stays valid.
	JWTLifetime Lifetime `env:"JWT_LIFETIME" envDefault:"24h"`

	// TestUserID is the sentinel user that may read but never mutate.
	// Leave empty to disable the read-only demo identity.
	TestUserID string `env:"TEST_USER_ID"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.TestUserID = strings.TrimSpace(a.TestUserID)
	if a.JWTLifetime <= 0 {
		a.JWTLifetime = Lifetime(defaultTokenLifetime)
	}
}
