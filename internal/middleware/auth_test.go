// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ocms-blog/internal/store"
)

// sessionCookie runs a request that stores values in a fresh session and
// returns the resulting cookie.
func sessionCookie(t *testing.T, sm *scs.SessionManager, values map[string]any) *http.Cookie {
	t.Helper()
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range values {
			sm.Put(r.Context(), k, v)
		}
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func lookupFrom(users map[int64]store.User, err error) UserLookup {
	return func(_ context.Context, id int64) (*store.User, error) {
		if err != nil {
			return nil, err
		}
		if u, ok := users[id]; ok {
			return &u, nil
		}
		return nil, nil
	}
}

func TestLoadUser(t *testing.T) {
	users := map[int64]store.User{1: {ID: 1, Name: "Admin", Email: "admin@example.com"}}

	tests := []struct {
		name       string
		session    map[string]any
		lookupErr  error
		wantUserID int64
		wantKept   bool
	}{
		{name: "anonymous", session: map[string]any{"other": "x"}},
		{name: "known user", session: map[string]any{SessionKeyUserID: int64(1)}, wantUserID: 1, wantKept: true},
		{name: "stale id removed", session: map[string]any{SessionKeyUserID: int64(9)}},
		{name: "lookup error keeps id", session: map[string]any{SessionKeyUserID: int64(1)}, lookupErr: errors.New("db down"), wantKept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := scs.New()
			cookie := sessionCookie(t, sm, tt.session)

			var gotID int64
			var kept bool
			h := sm.LoadAndSave(LoadUser(sm, lookupFrom(users, tt.lookupErr))(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					gotID = GetUserID(r)
					kept = sm.Exists(r.Context(), SessionKeyUserID)
				})))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(cookie)
			h.ServeHTTP(httptest.NewRecorder(), req)

			if gotID != tt.wantUserID {
				t.Errorf("GetUserID() = %d, want %d", gotID, tt.wantUserID)
			}
			if kept != tt.wantKept {
				t.Errorf("session user_id present = %v, want %v", kept, tt.wantKept)
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(req) != nil {
		t.Error("GetUser() on anonymous request should be nil")
	}
	if GetUserID(req) != 0 {
		t.Error("GetUserID() on anonymous request should be 0")
	}

	req = req.WithContext(WithUser(req.Context(), store.User{ID: 123, Email: "test@example.com"}))
	user := GetUser(req)
	if user == nil || user.ID != 123 || user.Email != "test@example.com" {
		t.Errorf("GetUser() = %+v", user)
	}
}

func TestCapabilities(t *testing.T) {
	admin := &store.User{ID: AdminUserID}
	reader := &store.User{ID: 2}

	tests := []struct {
		name string
		cap  Capability
		user *store.User
		want bool
	}{
		{"admin is admin", IsAdmin, admin, true},
		{"reader is not admin", IsAdmin, reader, false},
		{"anonymous is not admin", IsAdmin, nil, false},
		{"reader is authenticated", IsAuthenticated, reader, true},
		{"anonymous is not authenticated", IsAuthenticated, nil, false},
	}
	for _, tt := range tests {
		if got := tt.cap(tt.user); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *store.User
		wantStatus int
	}{
		{"anonymous", nil, http.StatusForbidden},
		{"non-admin", &store.User{ID: 2}, http.StatusForbidden},
		{"admin", &store.User{ID: 1}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/edit-post/5", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tt.user))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("inner handler called = %v", called)
			}
			if tt.wantStatus == http.StatusForbidden && rec.Body.String() != "Forbidden\n" {
				t.Errorf("body = %q, want standard status text", rec.Body.String())
			}
		})
	}
}

func TestRequire_CustomCapability(t *testing.T) {
	onlyAna := func(u *store.User) bool { return u != nil && u.Name == "Ana" }
	h := Require(onlyAna)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), store.User{ID: 5, Name: "Ana"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
