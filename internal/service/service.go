// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the blog's business rules on top of the store.
package service

import "errors"

// Domain errors. Handlers match these with errors.Is.
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrPostNotFound     = errors.New("post not found")
	ErrTitleTaken       = errors.New("post title already exists")
	ErrEmptyComment     = errors.New("comment text is empty")
	// ErrListingStale is returned by a write that was stored but could not
	// retire the cached listing.
	ErrListingStale = errors.New("post listing cache not invalidated")
)

// PostDateLayout is the long form used for post dates, e.g. "March 01, 2026".
const PostDateLayout = "January 02, 2006"
