// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Typed stores values of T as JSON in an underlying Cache.
type Typed[T any] struct {
	cache Cache
	ttl   time.Duration
}

// NewTyped wraps c. A zero ttl uses the backend default.
func NewTyped[T any](c Cache, ttl time.Duration) *Typed[T] {
	return &Typed[T]{cache: c, ttl: ttl}
}

// Get returns the cached value. ok is false on a miss or an undecodable entry.
func (t *Typed[T]) Get(ctx context.Context, key string) (value T, ok bool, err error) {
	data, err := t.cache.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		// A stale encoding is treated as a miss.
		var zero T
		return zero, false, nil
	}
	return value, true, nil
}

// Set stores value under key.
func (t *Typed[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	return t.cache.Set(ctx, key, data, t.ttl)
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Cache errors never fail the call; only load errors are returned.
func (t *Typed[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok, err := t.Get(ctx, key); err == nil && ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	_ = t.Set(ctx, key, v)
	return v, nil
}
