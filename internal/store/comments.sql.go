// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const createComment = `-- name: CreateComment :execlastid
INSERT INTO comments (author_id, post_id, text) VALUES (?, ?, ?)
`

// CreateCommentParams holds the columns of a new comment.
type CreateCommentParams struct {
	AuthorID int64
	PostID   int64
	Text     string
}

// CreateComment inserts a comment and returns its ID.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createComment, arg.AuthorID, arg.PostID, arg.Text)
	if err != nil {
		return 0, wrapWriteErr("creating comment", err)
	}
	return res.LastInsertId()
}

const listCommentsByPost = `-- name: ListCommentsByPost :many
SELECT c.id, c.author_id, c.post_id, c.text, u.name, u.email
FROM comments c
JOIN blog_users u ON u.id = c.author_id
WHERE c.post_id = ?
ORDER BY c.id
`

// ListCommentsByPost returns all comments of a post in storage order.
func (q *Queries) ListCommentsByPost(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsByPost, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.PostID, &c.Text, &c.AuthorName, &c.AuthorEmail); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countComments = `-- name: CountComments :one
SELECT COUNT(*) FROM comments
`

// CountComments returns the number of comments across all posts.
func (q *Queries) CountComments(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countComments).Scan(&n)
	return n, err
}
