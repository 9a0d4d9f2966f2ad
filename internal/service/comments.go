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

	"github.com/olegiv/ocms-blog/internal/store"
)

// CommentService records comments on posts.
type CommentService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(queries *store.Queries, logger *slog.Logger) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{queries: queries, logger: logger}
}

// Add stores a comment by authorID on postID.
func (s *CommentService) Add(ctx context.Context, authorID, postID int64, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyComment
	}

	if _, err := s.queries.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPostNotFound
		}
		return 0, fmt.Errorf("loading post %d: %w", postID, err)
	}

	id, err := s.queries.CreateComment(ctx, store.CreateCommentParams{
		AuthorID: authorID,
		PostID:   postID,
		Text:     text,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("comment added", "comment_id", id, "post_id", postID, "author_id", authorID)
	return id, nil
}
