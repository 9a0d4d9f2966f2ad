// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/olegiv/ocms-blog/internal/auth"
	"github.com/olegiv/ocms-blog/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent discards all output.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite database file with migrations applied.
// It is closed and removed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "blog-test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, store.DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with a real Argon2id hash of password.
func CreateUser(t *testing.T, db *sql.DB, name, email, password string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

// CreatePost inserts a post authored by authorID.
func CreatePost(t *testing.T, db *sql.DB, authorID int64, title string) store.Post {
	t.Helper()

	q := store.New(db)
	id, err := q.CreatePost(context.Background(), store.CreatePostParams{
		AuthorID: authorID,
		Title:    title,
		Subtitle: title + " subtitle",
		Date:     "March 01, 2026",
		Body:     "<p>" + title + " body</p>",
		ImgURL:   "https://example.com/img.jpg",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	p, err := q.GetPostByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	return p
}
