// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/store"
)

// LoginProtection combines a per-IP rate limit on login submissions with a
// per-email lockout after repeated failures. Unknown emails are tracked
// exactly like existing ones.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	mu       sync.Mutex
	attempts map[string]*loginAttempt
	now      func() time.Time

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration
	maxTracked        int
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is login POSTs per second per IP.
	IPRateLimit float64
	IPBurst     int
	// MaxFailedAttempts within AttemptWindow lock the email.
	MaxFailedAttempts int
	// LockoutDuration doubles with each consecutive lockout, capped at 24h.
	LockoutDuration time.Duration
	AttemptWindow   time.Duration
}

// DefaultLoginProtectionConfig returns the production defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

const maxLockout = 24 * time.Hour

// NewLoginProtection creates a LoginProtection. Zero fields take defaults.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	return &LoginProtection{
		ipLimiters:        newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst, 10000),
		attempts:          make(map[string]*loginAttempt),
		now:               time.Now,
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		maxTracked:        10000,
	}
}

// IsLocked reports whether email is locked and for how much longer.
func (lp *LoginProtection) IsLocked(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[store.NormalizeEmail(email)]
	if !ok {
		return false, 0
	}
	if remaining := a.lockedUntil.Sub(lp.now()); remaining > 0 {
		return true, remaining
	}
	return false, 0
}

// RecordFailure counts a failed login. It returns true and the lockout
// duration when this failure locks the email.
func (lp *LoginProtection) RecordFailure(email string) (bool, time.Duration) {
	key := store.NormalizeEmail(email)
	now := lp.now()

	lp.mu.Lock()
	defer lp.mu.Unlock()

	if len(lp.attempts) >= lp.maxTracked {
		lp.pruneLocked(now)
	}

	a, ok := lp.attempts[key]
	if !ok || now.Sub(a.firstFailed) > lp.attemptWindow {
		if !ok {
			a = &loginAttempt{}
			lp.attempts[key] = a
		}
		a.count = 0
		a.firstFailed = now
	}
	a.count++

	if a.count < lp.maxFailedAttempts {
		return false, 0
	}

	d := lp.lockoutDuration << a.lockouts
	if d <= 0 || d > maxLockout {
		d = maxLockout
	}
	a.lockedUntil = now.Add(d)
	a.lockouts++
	a.count = 0

	slog.Warn("login locked after repeated failures", "lockouts", a.lockouts, "duration", d)
	return true, d
}

// RecordSuccess forgets the failures of email.
func (lp *LoginProtection) RecordSuccess(email string) {
	lp.mu.Lock()
	delete(lp.attempts, store.NormalizeEmail(email))
	lp.mu.Unlock()
}

// pruneLocked drops entries whose window and lockout have both passed.
func (lp *LoginProtection) pruneLocked(now time.Time) {
	for k, a := range lp.attempts {
		if now.After(a.lockedUntil) && now.Sub(a.firstFailed) > lp.attemptWindow {
			delete(lp.attempts, k)
		}
	}
}

// Middleware rate limits POST requests per client IP with HTTP 429.
func (lp *LoginProtection) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r)
		if !lp.ipLimiters.allow(ip) {
			slog.WarnContext(r.Context(), "login rate limit exceeded", "ip", ip)
			http.Error(w, i18n.T(GetLanguage(r), "auth.rate_limit"), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
