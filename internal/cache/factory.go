// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Config selects and configures a backend.
type Config struct {
	// RedisURL enables Redis. Empty means memory.
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	// MaxItems bounds the memory backend.
	MaxItems int
}

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New builds the configured cache. If Redis is configured but unreachable
// a warning is logged and the memory backend is used instead, so the cache
// never prevents startup.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Cache, string) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisURL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		rc, err := NewRedisCache(dialCtx, RedisOptions{
			URL:          cfg.RedisURL,
			Prefix:       cfg.Prefix,
			DefaultTTL:   cfg.DefaultTTL,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err == nil {
			logger.Info("using redis cache", "prefix", cfg.Prefix)
			return rc, BackendRedis
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxItems:        cfg.MaxItems,
		CleanupInterval: time.Minute,
	}), BackendMemory
}
