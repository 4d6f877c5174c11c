package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobtracker/jobtracker-api/config"
	httpx "github.com/jobtracker/jobtracker-api/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	// Health is pinged by /healthz. Optional.
	Health httpx.Pinger
	Logger *slog.Logger
	// ErrCh receives the listener error if the server stops unexpectedly. Optional.
	ErrCh chan<- error
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := BuildHTTPHandler(cfg.Services, appCfg, cfg.Health, logger)
	return startServer(logger, handler, appCfg.HTTP.Addr, cfg.ErrCh)
}

// BuildHTTPHandler assembles the router from the service container.
func BuildHTTPHandler(
	svcs ServiceContainer,
	cfg *config.AppConfig,
	health httpx.Pinger,
	logger *slog.Logger,
) http.Handler {
	services := httpx.RouterServices{
		TrustProxy:  cfg.RateLimit.TrustProxy,
		MetricsPath: cfg.Observability.Metrics.Path,
		Logger:      logger,
	}
	// Typed nils must not reach the router's optional interface fields.
	if svcs.Tokens != nil {
		services.Tokens = svcs.Tokens
	}
	if svcs.Jobs != nil {
		services.Jobs = svcs.Jobs
	}
	if svcs.Auth != nil {
		services.Auth = svcs.Auth
	}
	if svcs.RateLimiter != nil {
		services.RateLimiter = svcs.RateLimiter
	}
	if health != nil {
		services.Health = health
	}
	if svcs.Metrics != nil {
		services.Metrics = svcs.Metrics
	}
	return httpx.NewRouter(services)
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(parent, shutdownWaitTimeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
