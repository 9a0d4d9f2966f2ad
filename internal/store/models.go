// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "strings"

// NormalizeEmail is the form emails are stored and looked up in, so that
// addresses differing only in case name one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is a registered account. PasswordHash is an encoded Argon2id hash.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Post is a blog post together with its author's display name.
type Post struct {
	ID         int64  `json:"id"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Date       string `json:"date"`
	Body       string `json:"body"`
	ImgURL     string `json:"img_url"`
}

// Comment is a comment on a post together with its author's name and email.
type Comment struct {
	ID          int64
	AuthorID    int64
	PostID      int64
	Text        string
	AuthorName  string
	AuthorEmail string
}
