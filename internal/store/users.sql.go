// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const createUser = `-- name: CreateUser :execlastid
INSERT INTO blog_users (name, email, password_hash) VALUES (?, ?, ?)
`

// CreateUserParams holds the columns of a new user.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// CreateUser inserts a user and returns it with its assigned ID.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	res, err := q.db.ExecContext(ctx, createUser, arg.Name, arg.Email, arg.PasswordHash)
	if err != nil {
		return User{}, wrapWriteErr("creating user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{
		ID:           id,
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
	}, nil
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, name, email, password_hash FROM blog_users WHERE id = ?
`

// GetUserByID returns sql.ErrNoRows when no user has the ID.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserByID, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, name, email, password_hash FROM blog_users WHERE email = ?
`

// GetUserByEmail returns sql.ErrNoRows when no user has the email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserByEmail, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

const updateUserPassword = `-- name: UpdateUserPassword :exec
UPDATE blog_users SET password_hash = ? WHERE id = ?
`

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, passwordHash, id)
	return err
}

const countUsers = `-- name: CountUsers :one
SELECT COUNT(*) FROM blog_users
`

// CountUsers returns the number of registered users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}
