package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtracker/jobtracker-api/config"
	"github.com/jobtracker/jobtracker-api/internal/adapters/memory"
	redisadapter "github.com/jobtracker/jobtracker-api/internal/adapters/redis"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			JWTSecret:   "s3cret",
			JWTLifetime: config.Lifetime(time.Hour),
		},
		RateLimit: config.RateLimitConfig{Enabled: true, Max: 2, Window: 15 * time.Minute},
	}
	cfg.Sanitize()
	return cfg
}

func newDeps(t *testing.T, cfg *config.AppConfig, withRedis bool) (*ServiceDeps, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	deps := &ServiceDeps{Config: cfg, DB: db, Logger: testLogger()}
	if withRedis {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		deps.RedisClient = client
	}
	return deps, mock
}

func TestNewServices(t *testing.T) {
	deps, _ := newDeps(t, testConfig(), true)

	svcs, err := NewServices(deps)
	require.NoError(t, err)

	assert.NotNil(t, svcs.Jobs)
	assert.NotNil(t, svcs.Auth)
	assert.NotNil(t, svcs.Tokens)
	assert.IsType(t, &redisadapter.RateLimiter{}, svcs.RateLimiter)
	assert.Nil(t, svcs.Metrics)
}

func TestNewServices_OptionalComponents(t *testing.T) {
	t.Run("rate limiting disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit.Enabled = false
		deps, _ := newDeps(t, cfg, true)

		svcs, err := NewServices(deps)
		require.NoError(t, err)
		assert.Nil(t, svcs.RateLimiter)
	})

	t.Run("no redis", func(t *testing.T) {
		deps, _ := newDeps(t, testConfig(), false)

		svcs, err := NewServices(deps)
		require.NoError(t, err)
		require.IsType(t, &memory.RateLimiter{}, svcs.RateLimiter)

		d, err := svcs.RateLimiter.Allow(context.Background(), "192.0.2.10")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, deps.Config.RateLimit.Max, d.Limit)
	})

	t.Run("metrics enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Observability.Metrics.Enabled = true
		deps, _ := newDeps(t, cfg, false)

		svcs, err := NewServices(deps)
		require.NoError(t, err)
		assert.NotNil(t, svcs.Metrics)
	})
}

func TestNewServices_Errors(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	cfg := testConfig()
	_, err = NewServices(&ServiceDeps{Config: cfg})
	require.Error(t, err)

	cfg.Auth.JWTSecret = ""
	deps, _ := newDeps(t, cfg, false)
	_, err = NewServices(deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token codec")
}

func TestBuildHTTPHandler(t *testing.T) {
	cfg := testConfig()
	cfg.Observability.Metrics = config.ObservabilityMetricsConfig{Enabled: true, Path: "/internal/metrics"}
	deps, mock := newDeps(t, cfg, false)
	svcs, err := NewServices(deps)
	require.NoError(t, err)

	h := BuildHTTPHandler(svcs, cfg, deps.DB, testLogger())

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWaitForShutdown(t *testing.T) {
	t.Run("signal", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGTERM

		err := waitForShutdown(shutdownConfig{quit: quit, errCh: make(chan error), logger: testLogger()})
		assert.NoError(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		boom := errors.New("listen: address in use")
		errCh := make(chan error, 1)
		errCh <- boom

		err := waitForShutdown(shutdownConfig{quit: make(chan os.Signal), errCh: errCh, logger: testLogger()})
		assert.ErrorIs(t, err, boom)
	})
}

func TestShutdownHTTPServer(t *testing.T) {
	assert.NoError(t, ShutdownHTTPServer(ShutdownConfig{}))

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	assert.NoError(t, ShutdownHTTPServer(ShutdownConfig{Server: srv, Logger: testLogger()}))
}
