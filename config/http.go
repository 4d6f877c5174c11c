package config

import "time"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
}

const (
	defaultMaxPageSize = 100
	maxMaxPageSize     = 1000
)

// JobsConfig controls job listing behavior.
type JobsConfig struct {
	// MaxPageSize caps the limit query parameter on job listings.
	MaxPageSize int `env:"JOBS_MAX_PAGE_SIZE" envDefault:"100"`
}

// Sanitize clamps the page size cap to a sane range.
func (j *JobsConfig) Sanitize() {
	if j.MaxPageSize < 1 {
		j.MaxPageSize = defaultMaxPageSize
	}
	if j.MaxPageSize > maxMaxPageSize {
		j.MaxPageSize = maxMaxPageSize
	}
}

// RateLimitConfig controls the fixed-window limiter in front of register and login.
type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Max     int           `env:"MAX"     envDefault:"10"`
	Window  time.Duration `env:"WINDOW"  envDefault:"15m"`
	// TrustProxy makes the limiter key on the first X-Forwarded-For hop instead of the peer address.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// Sanitize applies guardrails to rate limit values.
func (r *RateLimitConfig) Sanitize() {
	if r.Max < 1 {
		r.Max = 10
	}
	if r.Window <= 0 {
		r.Window = 15 * time.Minute
	}
}
