// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/ocms-blog/internal/auth"
)

// AdminSeed describes the account created on an empty database.
// The first user gets id 1 and therefore becomes the administrator.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// Enabled reports whether all seed fields are set.
func (s AdminSeed) Enabled() bool {
	return s.Name != "" && s.Email != "" && s.Password != ""
}

// SeedAdmin creates the administrator account if no user exists yet.
// It returns true when a user was created.
func SeedAdmin(ctx context.Context, db DBTX, seed AdminSeed) (bool, error) {
	if !seed.Enabled() {
		return false, errors.New("admin seed requires name, email and password")
	}

	queries := New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		slog.Debug("users already exist, skipping admin seed", "count", count)
		return false, nil
	}

	passwordHash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Name:         seed.Name,
		Email:        NormalizeEmail(seed.Email),
		PasswordHash: passwordHash,
	})
	if err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return true, nil
}
