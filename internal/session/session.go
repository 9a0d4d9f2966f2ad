// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Options configure the session manager.
type Options struct {
	Lifetime time.Duration
	// IsDev disables the Secure cookie flag so plain-HTTP development works.
	IsDev bool
	// CleanupInterval controls how often expired sessions are purged.
	// Zero uses the store's default.
	CleanupInterval time.Duration
}

func newManager(opts Options) *scs.SessionManager {
	sm := scs.New()

	sm.Lifetime = opts.Lifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 24 * time.Hour
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !opts.IsDev
	if !opts.IsDev {
		// __Host- requires Secure, Path=/ and no Domain.
		sm.Cookie.Name = "__Host-session"
	}
	return sm
}

// NewSQLite creates a session manager persisting sessions in the
// sessions table of a SQLite database. Sessions survive restarts.
func NewSQLite(db *sql.DB, opts Options) *scs.SessionManager {
	sm := newManager(opts)
	if opts.CleanupInterval > 0 {
		sm.Store = sqlite3store.NewWithCleanupInterval(db, opts.CleanupInterval)
	} else {
		sm.Store = sqlite3store.New(db)
	}
	return sm
}

// NewMemory creates a session manager with an in-process store. It is used
// for backends that have no sessions table.
func NewMemory(opts Options) *scs.SessionManager {
	sm := newManager(opts)
	if opts.CleanupInterval > 0 {
		sm.Store = memstore.NewWithCleanupInterval(opts.CleanupInterval)
	} else {
		sm.Store = memstore.New()
	}
	return sm
}
