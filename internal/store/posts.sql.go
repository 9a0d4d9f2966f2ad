// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const postColumns = `p.id, p.author_id, COALESCE(u.name, ''), p.title, p.subtitle, p.post_date, p.body, p.img_url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL)
	return p, err
}

const listPosts = `-- name: ListPosts :many
SELECT ` + postColumns + `
FROM blog_posts p
LEFT JOIN blog_users u ON u.id = p.author_id
ORDER BY p.id
`

// ListPosts returns every post in storage order.
func (q *Queries) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, listPosts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPostByID = `-- name: GetPostByID :one
SELECT ` + postColumns + `
FROM blog_posts p
LEFT JOIN blog_users u ON u.id = p.author_id
WHERE p.id = ?
`

// GetPostByID returns sql.ErrNoRows when no post has the ID.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostByID, id))
}

const createPost = `-- name: CreatePost :execlastid
INSERT INTO blog_posts (author_id, title, subtitle, post_date, body, img_url)
VALUES (?, ?, ?, ?, ?, ?)
`

// CreatePostParams holds the columns of a new post.
type CreatePostParams struct {
	AuthorID int64
	Title    string
	Subtitle string
	Date     string
	Body     string
	ImgURL   string
}

// CreatePost inserts a post and returns its ID. A duplicate title yields
// an error wrapping ErrUniqueViolation.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createPost,
		arg.AuthorID, arg.Title, arg.Subtitle, arg.Date, arg.Body, arg.ImgURL)
	if err != nil {
		return 0, wrapWriteErr("creating post", err)
	}
	return res.LastInsertId()
}

const updatePost = `-- name: UpdatePost :execrows
UPDATE blog_posts SET title = ?, subtitle = ?, img_url = ?, body = ? WHERE id = ?
`

// UpdatePostParams holds the mutable columns of a post. The author and date
// are not part of an update.
type UpdatePostParams struct {
	ID       int64
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

// UpdatePost overwrites a post's mutable fields and returns the number of
// rows matched.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updatePost, arg.Title, arg.Subtitle, arg.ImgURL, arg.Body, arg.ID)
	if err != nil {
		return 0, wrapWriteErr("updating post", err)
	}
	return res.RowsAffected()
}

const deletePost = `-- name: DeletePost :execrows
DELETE FROM blog_posts WHERE id = ?
`

// DeletePost removes a post (comments cascade) and returns the number of
// rows deleted.
func (q *Queries) DeletePost(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countPosts = `-- name: CountPosts :one
SELECT COUNT(*) FROM blog_posts
`

// CountPosts returns the number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPosts).Scan(&n)
	return n, err
}
