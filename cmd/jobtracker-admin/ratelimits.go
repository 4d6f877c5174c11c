package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtracker/jobtracker-api/config"
	"github.com/jobtracker/jobtracker-api/internal/bootstrap"
)

const defaultRedisTimeout = 30 * time.Second

var errRedisNotConfigured = errors.New("redis not configured")

type clearRateLimitOptions struct {
	Timeout time.Duration
}

func runClearRateLimits(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearRateLimitFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	n, err := clearRateLimits(ctx, client, &cmdCtx.Config)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Deleted %d rate limit counters\n", n)
}

func clearRateLimits(ctx context.Context, client redis.UniversalClient, cfg *config.AppConfig) (int, error) {
	limiter, err := bootstrap.NewRateLimiter(client, cfg)
	if err != nil {
		return 0, err
	}
	n, err := limiter.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear rate limits: %w", err)
	}
	return n, nil
}

func parseClearRateLimitFlags(args []string) (clearRateLimitOptions, error) {
	fs := flag.NewFlagSet("clear-rate-limits", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := clearRateLimitOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultRedisTimeout, "Maximum duration for the scan")

	if err := fs.Parse(args); err != nil {
		return clearRateLimitOptions{}, err
	}
	if opts.Timeout <= 0 {
		return clearRateLimitOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

// connectRedis returns a connected client, or errRedisNotConfigured when no Redis settings are present.
//
//nolint:ireturn // the concrete client depends on the configured topology.
func connectRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	cfg := cmdCtx.Config.Redis
	if !hasRedisConfig(&cfg) {
		return nil, errRedisNotConfigured
	}
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: cfg, Logger: cmdCtx.Logger})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func hasRedisConfig(cfg *config.RedisConfig) bool {
	if cfg == nil {
		return false
	}
	if cfg.UseCluster {
		return len(cfg.ClusterNodes) > 0 || cfg.URI != ""
	}
	if cfg.UseSentinel {
		return len(cfg.SentinelNodes) > 0
	}
	return cfg.URI != ""
}
