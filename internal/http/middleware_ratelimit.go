package httpx

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jobtracker/jobtracker-api/internal/observability/metrics"
	"github.com/jobtracker/jobtracker-api/internal/ports"
)

const (
	msgTooManyRequests       = "Too many requests from this IP, please try again after 15 minutes"
	msgTooManyRequestsPrefix = "Too many requests from this IP, please try again after "
)

// RateLimitOptions configures the RateLimit middleware.
type RateLimitOptions struct {
	Limiter ports.RateLimiter
	// TrustProxy keys clients on the first X-Forwarded-For hop instead of the peer address.
	TrustProxy bool
	Logger     *slog.Logger
	Metrics    *metrics.HTTP
}

// RateLimit returns a middleware that throttles requests per client IP. When the
// limiter backend fails the request is let through and a warning is logged.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		if opts.Limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, opts.TrustProxy)
			d, err := opts.Limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request",
					slog.String("client_ip", ip),
					slog.Any("error", err))
				opts.Metrics.ObserveRateLimit(metrics.RateLimitError)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				opts.Metrics.ObserveRateLimit(metrics.RateLimitRejected)
				WriteMsg(w, http.StatusTooManyRequests, tooManyRequestsMsg(d.Window))
				return
			}

			opts.Metrics.ObserveRateLimit(metrics.RateLimitAllowed)
			next.ServeHTTP(w, r)
		})
	}
}

// tooManyRequestsMsg names the limiter window in whole hours, minutes or seconds.
func tooManyRequestsMsg(window time.Duration) string {
	if window <= 0 {
		return msgTooManyRequests
	}
	var n int64
	var unit string
	switch {
	case window%time.Hour == 0:
		n, unit = int64(window/time.Hour), "hour"
	case window%time.Minute == 0:
		n, unit = int64(window/time.Minute), "minute"
	default:
		n, unit = int64(math.Ceil(window.Seconds())), "second"
	}
	if n != 1 {
		unit += "s"
	}
	return msgTooManyRequestsPrefix + strconv.FormatInt(n, 10) + " " + unit
}

// clientIP returns the address used as the rate limit key.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
