// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DatabaseURL   string `env:"DATABASE_URL" envDefault:"sqlite:///blog.db"`
	SessionSecret string `env:"BLOG_SESSION_SECRET,required"`
	ServerHost    string `env:"BLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BLOG_SERVER_PORT" envDefault:"5000"`
	Env           string `env:"BLOG_ENV" envDefault:"development"`
	LogLevel      string `env:"BLOG_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"BLOG_LOG_FORMAT" envDefault:"text"` // text or json
	DefaultLang   string `env:"BLOG_DEFAULT_LANG" envDefault:"pt"`

	SessionLifetime time.Duration `env:"BLOG_SESSION_LIFETIME" envDefault:"24h"`

	// Listing cache. Memory is used when RedisURL is empty or unreachable.
	RedisURL    string        `env:"BLOG_REDIS_URL"`
	CachePrefix string        `env:"BLOG_CACHE_PREFIX" envDefault:"blog:"`
	CacheTTL    time.Duration `env:"BLOG_CACHE_TTL" envDefault:"10m"`

	// Optional administrator created on an empty database.
	AdminName     string `env:"BLOG_ADMIN_NAME"`
	AdminEmail    string `env:"BLOG_ADMIN_EMAIL"`
	AdminPassword string `env:"BLOG_ADMIN_PASSWORD"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SeedAdmin returns true if all admin seed variables are set.
func (c Config) SeedAdmin() bool {
	return c.AdminName != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

// MinSessionSecretLength is the minimum length of BLOG_SESSION_SECRET in bytes.
const MinSessionSecretLength = 32

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFromMap parses configuration from vars instead of the process environment.
func LoadFromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("BLOG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("BLOG_SESSION_SECRET is a known example value; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}
	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("BLOG_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("BLOG_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("BLOG_SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("BLOG_SERVER_PORT out of range: %d", c.ServerPort)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	classes := 0
	for _, set := range []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	} {
		if strings.ContainsAny(s, set) {
			classes++
		}
	}
	return classes >= 3
}
