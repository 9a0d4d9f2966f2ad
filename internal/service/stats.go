// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/ocms-blog/internal/store"
)

// SiteStats are the totals shown on the admin page.
type SiteStats struct {
	Users    int64
	Posts    int64
	Comments int64
}

// Stats counts users, posts and comments.
func Stats(ctx context.Context, q *store.Queries) (SiteStats, error) {
	var s SiteStats
	var err error
	if s.Users, err = q.CountUsers(ctx); err != nil {
		return s, fmt.Errorf("counting users: %w", err)
	}
	if s.Posts, err = q.CountPosts(ctx); err != nil {
		return s, fmt.Errorf("counting posts: %w", err)
	}
	if s.Comments, err = q.CountComments(ctx); err != nil {
		return s, fmt.Errorf("counting comments: %w", err)
	}
	return s, nil
}
