// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/ocms-blog/internal/auth"
	"github.com/olegiv/ocms-blog/internal/store"
)

// dummyHash is verified against when the email is unknown so that both
// failure paths cost one Argon2 computation.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$c29tZXNhbHRzb21lc2FsdA$JmJpZ5B0vQ4y2m3n8b2Vd6iJq2d8a7R1bRr7d0b1n3A"

// AccountService registers and authenticates users.
type AccountService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(queries *store.Queries, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{queries: queries, logger: logger}
}

// Registration is the input of Register.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user. It returns ErrEmailTaken without creating
// anything when the email is already in use.
func (s *AccountService) Register(ctx context.Context, in Registration) (store.User, error) {
	email := store.NormalizeEmail(in.Email)

	_, err := s.queries.GetUserByEmail(ctx, email)
	if err == nil {
		return store.User{}, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, fmt.Errorf("looking up email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.User{}, err
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrUniqueViolation) {
		// Lost a race with a concurrent registration.
		return store.User{}, ErrEmailTaken
	}
	if err != nil {
		return store.User{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials. It returns ErrUserNotFound or
// ErrPasswordMismatch; callers showing errors to users should not
// distinguish them.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, store.NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		_, _ = auth.CheckPassword(password, dummyHash)
		return store.User{}, ErrUserNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("checking password for user %d: %w", user.ID, err)
	}
	if !ok {
		return store.User{}, ErrPasswordMismatch
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, &user, password)
	}
	return user, nil
}

// rehash upgrades a stored hash to the current parameters. Failure is
// logged only; the login itself already succeeded.
func (s *AccountService) rehash(ctx context.Context, user *store.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn("rehashing password failed", "user_id", user.ID, "error", err)
		return
	}
	if err := s.queries.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		s.logger.Warn("storing rehashed password failed", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
	s.logger.Info("password rehashed with current parameters", "user_id", user.ID)
}

// User returns the user with id, or ErrUserNotFound.
func (s *AccountService) User(ctx context.Context, id int64) (store.User, error) {
	user, err := s.queries.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, ErrUserNotFound
	}
	return user, err
}
