package bootstrap

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtracker/jobtracker-api/config"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_LIFETIME", "7d")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.JWTLifetime.Duration())
	assert.Equal(t, 3, cfg.RateLimit.Max)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSetLogLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		logLevel.Set(slog.LevelInfo)
	})

	var buf bytes.Buffer
	logger := initLogger(&buf)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	SetLogLevel(config.ObservabilityConfig{LogLevel: "debug"})
	logger.Debug("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	SetLogLevel(config.ObservabilityConfig{LogLevel: "error"})
	slog.Warn("suppressed")
	assert.Empty(t, buf.String())
}
