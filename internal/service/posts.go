// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/ocms-blog/internal/cache"
	"github.com/olegiv/ocms-blog/internal/store"
)

// listingPrefix keys the cached post listing shown on the home page.
const listingPrefix = "posts:all"

// PostService manages posts. The listing is cached per generation and
// every write starts a new generation.
type PostService struct {
	queries *store.Queries
	listing *cache.Generational[[]store.Post]
	logger  *slog.Logger
	now     func() time.Time
}

// NewPostService creates a PostService. c may be nil to disable caching.
func NewPostService(queries *store.Queries, c cache.Cache, ttl time.Duration, logger *slog.Logger) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PostService{
		queries: queries,
		logger:  logger,
		now:     time.Now,
	}
	if c != nil {
		s.listing = cache.NewGenerational[[]store.Post](c, listingPrefix, ttl)
	}
	return s
}

// PostInput holds the editable fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

// List returns all posts in id order with author names.
func (s *PostService) List(ctx context.Context) ([]store.Post, error) {
	if s.listing == nil {
		return s.queries.ListPosts(ctx)
	}
	return s.listing.GetOrLoad(ctx, s.queries.ListPosts)
}

// Get returns a post or ErrPostNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (store.Post, error) {
	post, err := s.queries.GetPostByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Post{}, ErrPostNotFound
	}
	if err != nil {
		return store.Post{}, fmt.Errorf("loading post %d: %w", id, err)
	}
	return post, nil
}

// Create stores a post dated today and authored by authorID.
// A duplicate title yields ErrTitleTaken.
func (s *PostService) Create(ctx context.Context, authorID int64, in PostInput) (int64, error) {
	id, err := s.queries.CreatePost(ctx, store.CreatePostParams{
		AuthorID: authorID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(PostDateLayout),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
	})
	if errors.Is(err, store.ErrUniqueViolation) {
		return 0, ErrTitleTaken
	}
	if err != nil {
		return 0, err
	}

	s.logger.Info("post created", "post_id", id, "author_id", authorID)
	if err := s.invalidate(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// Update overwrites the editable fields of a post. Author and date are kept.
func (s *PostService) Update(ctx context.Context, id int64, in PostInput) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	// Rows affected is not checked: MySQL reports 0 for an unchanged row.
	_, err := s.queries.UpdatePost(ctx, store.UpdatePostParams{
		ID:       id,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImgURL:   in.ImgURL,
		Body:     in.Body,
	})
	if errors.Is(err, store.ErrUniqueViolation) {
		return ErrTitleTaken
	}
	if err != nil {
		return err
	}

	s.logger.Info("post updated", "post_id", id)
	return s.invalidate(ctx)
}

// Delete removes a post and its comments. An unknown id yields ErrPostNotFound.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeletePost(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	if n == 0 {
		return ErrPostNotFound
	}

	s.logger.Info("post deleted", "post_id", id)
	return s.invalidate(ctx)
}

// Comments returns the comments of a post in submission order.
func (s *PostService) Comments(ctx context.Context, postID int64) ([]store.Comment, error) {
	return s.queries.ListCommentsByPost(ctx, postID)
}

// invalidate retires the cached listing. A failure is returned because
// the listing would keep showing the old posts until the TTL runs out.
func (s *PostService) invalidate(ctx context.Context) error {
	if s.listing == nil {
		return nil
	}
	if err := s.listing.Bump(ctx); err != nil {
		s.logger.Error("invalidating post listing cache failed", "error", err)
		return fmt.Errorf("%w: %w", ErrListingStale, err)
	}
	return nil
}
