// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProtection(t *testing.T) (*LoginProtection, *time.Time) {
	t.Helper()
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1,
		IPBurst:           2,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     10 * time.Minute,
	})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }
	return lp, &now
}

func TestLoginProtection_LocksAfterMaxFailures(t *testing.T) {
	lp, now := newTestProtection(t)

	for i := 1; i < 3; i++ {
		if locked, _ := lp.RecordFailure("ana@example.com"); locked {
			t.Fatalf("locked after %d failures", i)
		}
	}
	locked, d := lp.RecordFailure("ANA@example.com ")
	if !locked || d != time.Minute {
		t.Fatalf("third failure: locked=%v d=%v, want true 1m", locked, d)
	}

	if locked, remaining := lp.IsLocked("ana@example.com"); !locked || remaining != time.Minute {
		t.Errorf("IsLocked = %v %v", locked, remaining)
	}

	*now = now.Add(61 * time.Second)
	if locked, _ := lp.IsLocked("ana@example.com"); locked {
		t.Error("lock should expire")
	}
}

func TestLoginProtection_ExponentialBackoff(t *testing.T) {
	lp, now := newTestProtection(t)

	var durations []time.Duration
	for round := 0; round < 3; round++ {
		for i := 0; i < 3; i++ {
			if locked, d := lp.RecordFailure("bob@example.com"); locked {
				durations = append(durations, d)
			}
		}
		*now = now.Add(time.Hour)
	}

	want := []time.Duration{time.Minute, 2 * time.Minute, 4 * time.Minute}
	if len(durations) != len(want) {
		t.Fatalf("durations = %v, want %v", durations, want)
	}
	for i := range want {
		if durations[i] != want[i] {
			t.Errorf("lockout %d = %v, want %v", i, durations[i], want[i])
		}
	}
}

func TestLoginProtection_WindowResets(t *testing.T) {
	lp, now := newTestProtection(t)

	lp.RecordFailure("c@example.com")
	lp.RecordFailure("c@example.com")
	*now = now.Add(11 * time.Minute)
	if locked, _ := lp.RecordFailure("c@example.com"); locked {
		t.Error("failures outside the window should not count")
	}
}

func TestLoginProtection_SuccessClears(t *testing.T) {
	lp, _ := newTestProtection(t)

	lp.RecordFailure("d@example.com")
	lp.RecordFailure("d@example.com")
	lp.RecordSuccess("d@example.com")
	if locked, _ := lp.RecordFailure("d@example.com"); locked {
		t.Error("success should reset the failure count")
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp, _ := newTestProtection(t)
	h := lp.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if post("10.0.0.1:1234") != http.StatusOK || post("10.0.0.1:5678") != http.StatusOK {
		t.Fatal("burst should be allowed")
	}
	if code := post("10.0.0.1:9999"); code != http.StatusTooManyRequests {
		t.Errorf("third POST status = %d, want 429", code)
	}
	if code := post("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", code)
	}

	// GET requests are never limited.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET status = %d", rec.Code)
		}
	}
}

func TestLimiterCache_ResetsWhenFull(t *testing.T) {
	lc := newLimiterCache[string](1, 1, 2)
	lc.allow("a")
	lc.allow("b")
	lc.allow("c")
	if n := lc.size(); n != 1 {
		t.Errorf("size = %d, want 1 after reset", n)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4321"
	if got := ClientIP(req); got != "192.0.2.7" {
		t.Errorf("ClientIP = %q", got)
	}
	req.RemoteAddr = "192.0.2.8"
	if got := ClientIP(req); got != "192.0.2.8" {
		t.Errorf("ClientIP without port = %q", got)
	}
}
