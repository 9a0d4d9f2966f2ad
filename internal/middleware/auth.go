// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for identity resolution,
// authorization and request handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ocms-blog/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys.
const (
	ContextKeyUser     ContextKey = "user"
	ContextKeyLanguage ContextKey = "language"
)

// Session keys.
const (
	SessionKeyUserID = "user_id"
	SessionKeyLang   = "lang"
)

// UserLookup resolves a user id. It returns (nil, nil) when no such user exists.
type UserLookup func(ctx context.Context, id int64) (*store.User, error)

// LoadUser resolves the session's user id into a User on every request.
// Requests without a resolvable id continue anonymously; an id whose user no
// longer exists is removed from the session.
func LoadUser(sm *scs.SessionManager, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := sm.GetInt64(ctx, SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := lookup(ctx, userID)
			if err != nil {
				slog.ErrorContext(ctx, "loading session user failed", "user_id", userID, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				sm.Remove(ctx, SessionKeyUserID)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, *user)))
		})
	}
}

// WithUser returns a context carrying user as the resolved identity.
func WithUser(ctx context.Context, user store.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// GetUser retrieves the current user from the request context.
// Returns nil if the request is anonymous.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID, or 0 if anonymous.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// Capability decides whether a resolved identity (nil when anonymous) may
// proceed.
type Capability func(user *store.User) bool

// AdminUserID is the id of the single administrator account.
const AdminUserID int64 = 1

// IsAuthenticated is satisfied by any resolved identity.
func IsAuthenticated(user *store.User) bool {
	return user != nil
}

// IsAdmin is satisfied only by the user with AdminUserID.
func IsAdmin(user *store.User) bool {
	return user != nil && user.ID == AdminUserID
}

// Require guards a handler with capability. Requests that fail it get
// 403 Forbidden and nothing else happens.
func Require(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if !capability(user) {
				slog.WarnContext(r.Context(), "access denied",
					"status", http.StatusForbidden,
					"user_id", GetUserID(r),
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is Require(IsAdmin).
func RequireAdmin() func(http.Handler) http.Handler {
	return Require(IsAdmin)
}
