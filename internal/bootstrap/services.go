package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtracker/jobtracker-api/config"
	"github.com/jobtracker/jobtracker-api/internal/adapters/jwtauth"
	"github.com/jobtracker/jobtracker-api/internal/adapters/memory"
	redisadapter "github.com/jobtracker/jobtracker-api/internal/adapters/redis"
	"github.com/jobtracker/jobtracker-api/internal/data"
	"github.com/jobtracker/jobtracker-api/internal/observability/metrics"
	"github.com/jobtracker/jobtracker-api/internal/ports"
	"github.com/jobtracker/jobtracker-api/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs   *service.JobService
	Auth   *service.AuthService
	Tokens *jwtauth.Codec
	// RateLimiter is nil when rate limiting is disabled. Without Redis it counts in process.
	RateLimiter ports.RateLimiter
	// Metrics is nil unless METRICS_ENABLED is set.
	Metrics *metrics.HTTP
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional
	Logger      *slog.Logger
}

// NewTokenCodec builds the identity token codec from auth config.
func NewTokenCodec(cfg config.AuthConfig) (*jwtauth.Codec, error) {
	codec, err := jwtauth.NewCodec(jwtauth.Config{
		Secret:     []byte(cfg.JWTSecret),
		Lifetime:   cfg.JWTLifetime.Duration(),
		TestUserID: cfg.TestUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	return codec, nil
}

// NewRateLimiter builds the Redis-backed limiter for the auth routes.
func NewRateLimiter(client redis.UniversalClient, cfg *config.AppConfig) (*redisadapter.RateLimiter, error) {
	limiter, err := redisadapter.NewRateLimiter(client, redisadapter.RateLimiterOptions{
		Limit:  cfg.RateLimit.Max,
		Window: cfg.RateLimit.Window,
		Prefix: cfg.Redis.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return limiter, nil
}

// NewServices wires repositories, token codec and services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require config")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("service deps require a database")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	codec, err := NewTokenCodec(cfg.Auth)
	if err != nil {
		return ServiceContainer{}, err
	}

	jobs, err := service.NewJobService(service.JobServiceOptions{
		Repo:         data.NewJobRepo(deps.DB),
		MaxPageLimit: cfg.Jobs.MaxPageSize,
		Logger:       logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("job service: %w", err)
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:  data.NewUserRepo(deps.DB),
		Tokens: codec,
		Logger: logger,
	})

	container := ServiceContainer{Jobs: jobs, Auth: auth, Tokens: codec}

	switch {
	case !cfg.RateLimit.Enabled:
		logger.Info("auth rate limiting disabled")
	case deps.RedisClient == nil:
		logger.Warn("redis is not connected; auth rate limiting uses in-process counters")
		limiter, limErr := memory.NewRateLimiter(memory.RateLimiterOptions{
			Limit:  cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		})
		if limErr != nil {
			return ServiceContainer{}, fmt.Errorf("rate limiter: %w", limErr)
		}
		container.RateLimiter = limiter
	default:
		limiter, limErr := NewRateLimiter(deps.RedisClient, cfg)
		if limErr != nil {
			return ServiceContainer{}, limErr
		}
		container.RateLimiter = limiter
	}

	if cfg.Observability.Metrics.IsEnabled() {
		container.Metrics = metrics.NewHTTP()
	}

	return container, nil
}

// ServiceOrchestrationConfig contains everything needed to serve until shutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	DB       *sql.DB
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until a signal or a server error.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	serverCfg := &HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		ErrCh:    errCh,
	}
	if cfg.DB != nil {
		serverCfg.Health = cfg.DB
	}
	server := StartHTTPServer(serverCfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return waitForShutdown(shutdownConfig{
		quit:       quit,
		errCh:      errCh,
		httpServer: server,
		logger:     logger,
	})
}

type shutdownConfig struct {
	quit       <-chan os.Signal
	errCh      <-chan error
	httpServer *http.Server
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal or a server error, then stops the server.
func waitForShutdown(cfg shutdownConfig) error {
	select {
	case sig := <-cfg.quit:
		cfg.logger.Info("shutting down services...", "signal", sig.String())
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer == nil {
		return nil
	}
	return ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
}
