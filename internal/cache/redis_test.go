// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if BLOG_TEST_REDIS_URL is not set.
func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("BLOG_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: BLOG_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache_Basic(t *testing.T) {
	url := skipIfNoRedis(t)
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisOptions{URL: url, Prefix: "blog-test:", DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer func() { _ = c.Close() }()
	_ = c.Clear(ctx)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(missing) err = %v, want ErrCacheMiss", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Clear err = %v, want ErrCacheMiss", err)
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisOptions{}); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestNew_Redis(t *testing.T) {
	url := skipIfNoRedis(t)
	c, backend := New(context.Background(), Config{RedisURL: url, Prefix: "blog-test:"}, nil)
	defer func() { _ = c.Close() }()
	if backend != BackendRedis {
		t.Errorf("backend = %q, want %q", backend, BackendRedis)
	}
}
