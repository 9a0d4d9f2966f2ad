// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// limiterCache hands out one token bucket per key.
type limiterCache[K comparable] struct {
	mu       sync.Mutex
	limiters map[K]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxKeys  int
}

func newLimiterCache[K comparable](rps float64, burst, maxKeys int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		maxKeys:  maxKeys,
	}
}

// allow consumes a token for key. When the cache grows past maxKeys it is
// reset, which at worst grants a fresh burst to every client.
func (lc *limiterCache[K]) allow(key K) bool {
	lc.mu.Lock()
	l, ok := lc.limiters[key]
	if !ok {
		if lc.maxKeys > 0 && len(lc.limiters) >= lc.maxKeys {
			lc.limiters = make(map[K]*rate.Limiter)
		}
		l = rate.NewLimiter(lc.rate, lc.burst)
		lc.limiters[key] = l
	}
	lc.mu.Unlock()
	return l.Allow()
}

func (lc *limiterCache[K]) size() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return len(lc.limiters)
}

// ClientIP returns the host part of r.RemoteAddr. chi's RealIP middleware
// has already replaced it with the proxy-reported address when present.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	limiters *limiterCache[string]
	onLimit  http.Handler
}

// NewRateLimiter allows rps requests per second per IP with the given burst.
// onLimit answers rejected requests; nil means a plain 429.
func NewRateLimiter(rps float64, burst int, onLimit http.Handler) *RateLimiter {
	if onLimit == nil {
		onLimit = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
	return &RateLimiter{
		limiters: newLimiterCache[string](rps, burst, 10000),
		onLimit:  onLimit,
	}
}

// Middleware applies the limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiters.allow(ClientIP(r)) {
			rl.onLimit.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
