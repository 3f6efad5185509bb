package config

import (
	"log/slog"

	"github.com/ishala/illegal-waste-reporter-BE/ratelimit"
)

// NewAuthLimiter returns a Redis-backed limiter when REDIS_ADDR is set and an
// in-process one otherwise. The close func is never nil.
func NewAuthLimiter(cfg *Config) (ratelimit.Limiter, func() error, error) {
	if cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set, using in-process rate limiter")
		return ratelimit.NewTokenBucketLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow), func() error { return nil }, nil
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RateLimitPrefix, cfg.AuthRateLimit, cfg.AuthRateWindow)
	if err != nil {
		return nil, nil, err
	}
	return limiter, limiter.Close, nil
}
