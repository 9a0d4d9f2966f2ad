// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generational caches one value of T under a key that embeds the current
// generation token. Bump replaces the token, so an entry filled from data
// loaded before a Bump is stored under a key no reader asks for again.
type Generational[T any] struct {
	cache  Cache
	typed  *Typed[T]
	prefix string
	ttl    time.Duration
	newGen func() string
}

// NewGenerational stores entries as "<prefix>:<generation>" and the token
// itself under "<prefix>:gen".
func NewGenerational[T any](c Cache, prefix string, ttl time.Duration) *Generational[T] {
	return &Generational[T]{
		cache:  c,
		typed:  NewTyped[T](c, ttl),
		prefix: prefix,
		ttl:    ttl,
		newGen: uuid.NewString,
	}
}

func (g *Generational[T]) genKey() string {
	return g.prefix + ":gen"
}

// generation returns the current token, creating one when none is stored.
func (g *Generational[T]) generation(ctx context.Context) (string, error) {
	data, err := g.cache.Get(ctx, g.genKey())
	if err == nil && len(data) > 0 {
		return string(data), nil
	}
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		return "", err
	}

	// Whoever stores a token last wins. A reader only loads after writing
	// its token, so its fill never predates a write that bumped before it.
	gen := g.newGen()
	if err := g.cache.Set(ctx, g.genKey(), []byte(gen), g.ttl); err != nil {
		return "", err
	}
	return gen, nil
}

// GetOrLoad returns the value cached for the current generation or calls
// load and caches its result. When the token cannot be read, load is called
// and nothing is cached.
func (g *Generational[T]) GetOrLoad(ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	gen, err := g.generation(ctx)
	if err != nil {
		return load(ctx)
	}
	return g.typed.GetOrLoad(ctx, g.prefix+":"+gen, load)
}

// Bump starts a new generation. Entries of earlier generations expire on
// their own.
func (g *Generational[T]) Bump(ctx context.Context) error {
	if err := g.cache.Set(ctx, g.genKey(), []byte(g.newGen()), g.ttl); err != nil {
		return fmt.Errorf("bumping cache generation %s: %w", g.prefix, err)
	}
	return nil
}
