package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobtracker/jobtracker-api/internal/observability/metrics"
	"github.com/jobtracker/jobtracker-api/internal/ports"
)

const apiPrefix = "/api/v1"

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs   JobService
	Auth   AuthService
	Tokens ports.TokenVerifier
	// Optional: throttles register and login when set.
	RateLimiter ports.RateLimiter
	// TrustProxy keys the rate limiter on X-Forwarded-For.
	TrustProxy bool
	// Optional: database ping for /healthz.
	Health Pinger
	// Optional: exposes the scrape endpoint and records request metrics when set.
	Metrics *metrics.HTTP
	// MetricsPath defaults to /metrics.
	MetricsPath string
	Logger  *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	health := &HealthHandlers{DB: services.Health, Logger: logger}
	mux.HandleFunc("GET /healthz", health.Health)
	mux.HandleFunc("HEAD /healthz", health.Health)

	if services.Metrics != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, services.Metrics.Handler())
	}

	authn := RequireBearer(services.Tokens)
	if services.Jobs != nil {
		registerJobRoutes(mux, &JobHandlers{Svc: services.Jobs}, authn)
	}
	if services.Auth != nil {
		throttle := RateLimit(RateLimitOptions{
			Limiter:    services.RateLimiter,
			TrustProxy: services.TrustProxy,
			Logger:     logger,
			Metrics:    services.Metrics,
		})
		registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth}, authn, throttle)
	}

	return Chain(mux,
		Recover(logger),
		Logging(logger),
		Metrics(services.Metrics),
	)
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, authn func(http.Handler) http.Handler) {
	read := func(fn http.HandlerFunc) http.Handler { return Chain(fn, authn) }
	write := func(fn http.HandlerFunc) http.Handler { return Chain(fn, authn, RejectRestricted()) }

	mux.Handle("GET "+apiPrefix+"/jobs", read(h.ListJobs))
	mux.Handle("GET "+apiPrefix+"/jobs/stats", read(h.Stats))
	mux.Handle("GET "+apiPrefix+"/jobs/{id}", read(h.GetJob))
	mux.Handle("POST "+apiPrefix+"/jobs", write(h.CreateJob))
	mux.Handle("PATCH "+apiPrefix+"/jobs/{id}", write(h.UpdateJob))
	mux.Handle("DELETE "+apiPrefix+"/jobs/{id}", write(h.DeleteJob))
}

func registerAuthRoutes(
	mux *http.ServeMux,
	h *AuthHandlers,
	authn, throttle func(http.Handler) http.Handler,
) {
	mux.Handle("POST "+apiPrefix+"/auth/register", Chain(http.HandlerFunc(h.Register), throttle))
	mux.Handle("POST "+apiPrefix+"/auth/login", Chain(http.HandlerFunc(h.Login), throttle))
	mux.Handle("PATCH "+apiPrefix+"/auth/updateUser", Chain(http.HandlerFunc(h.UpdateUser), authn, RejectRestricted()))
}
