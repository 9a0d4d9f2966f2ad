// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
	"github.com/olegiv/ocms-blog/internal/service"
	"github.com/olegiv/ocms-blog/internal/store"
)

// PostsHandler handles the post listing, post pages, comments and the
// admin post editor.
type PostsHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	renderer *render.Renderer
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(posts *service.PostService, comments *service.CommentService, renderer *render.Renderer) *PostsHandler {
	return &PostsHandler{
		posts:    posts,
		comments: comments,
		renderer: renderer,
	}
}

// postView is the data of the post page.
type postView struct {
	Post     store.Post
	Comments []store.Comment
}

// postFormView is the data of the create/edit page.
type postFormView struct {
	HeadingKey string
	Action     string
}

// Index lists all posts.
func (h *PostsHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list posts", "error", err)
		return
	}
	renderPage(w, r, h.renderer, pageIndex, render.TemplateData{Data: posts})
}

// Show renders a post with its comments.
func (h *PostsHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		renderNotFound(w, r, h.renderer)
		return
	}
	h.renderPost(w, r, id, CommentForm{}, nil)
}

func (h *PostsHandler) renderPost(w http.ResponseWriter, r *http.Request, id int64, form CommentForm, errs map[string]string) {
	post, err := h.posts.Get(r.Context(), id)
	if errors.Is(err, service.ErrPostNotFound) {
		renderNotFound(w, r, h.renderer)
		return
	}
	if err != nil {
		logAndInternalError(w, r, "failed to load post", "post_id", id, "error", err)
		return
	}

	comments, err := h.posts.Comments(r.Context(), id)
	if err != nil {
		logAndInternalError(w, r, "failed to load comments", "post_id", id, "error", err)
		return
	}

	renderPage(w, r, h.renderer, pagePost, render.TemplateData{
		Title:  post.Title,
		Data:   postView{Post: post, Comments: comments},
		Form:   form,
		Errors: errs,
	})
}

// Comment stores a comment from the logged-in user. Anonymous visitors are
// sent to the login page and nothing is stored.
func (h *PostsHandler) Comment(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	user := middleware.GetUser(r)
	if user == nil {
		flashInfo(w, r, h.renderer, redirectLogin, i18n.T(lang, "comment.login_required"))
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		renderNotFound(w, r, h.renderer)
		return
	}

	form := bindCommentForm(r)
	if errs := validateForm(lang, form); errs != nil {
		h.renderPost(w, r, id, form, errs)
		return
	}

	_, err = h.comments.Add(r.Context(), user.ID, id, form.Text)
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		renderNotFound(w, r, h.renderer)
		return
	case errors.Is(err, service.ErrEmptyComment):
		h.renderPost(w, r, id, form, map[string]string{"text": i18n.T(lang, "validation.required")})
		return
	case err != nil:
		logAndInternalError(w, r, "failed to add comment", "post_id", id, "error", err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf(redirectPostID, id), http.StatusSeeOther)
}

// NewForm renders the empty post editor.
func (h *PostsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderEditor(w, r, "post.create_title", RouteNewPost, PostForm{}, nil)
}

// Create stores a new post dated today and authored by the current user.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	form := bindPostForm(r)

	if errs := validateForm(lang, form); errs != nil {
		h.renderEditor(w, r, "post.create_title", RouteNewPost, form, errs)
		return
	}

	id, err := h.posts.Create(r.Context(), middleware.GetUserID(r), form.Input())
	if errors.Is(err, service.ErrTitleTaken) {
		h.renderEditor(w, r, "post.create_title", RouteNewPost, form,
			map[string]string{"title": i18n.T(lang, "post.title_taken")})
		return
	}
	if err != nil {
		logAndInternalError(w, r, "failed to create post", "error", err)
		return
	}

	slog.InfoContext(r.Context(), "post created", "post_id", id, "user_id", middleware.GetUserID(r))
	http.Redirect(w, r, redirectHome, http.StatusSeeOther)
}

// EditForm renders the editor filled with the post's current fields.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		renderNotFound(w, r, h.renderer)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if errors.Is(err, service.ErrPostNotFound) {
		renderNotFound(w, r, h.renderer)
		return
	}
	if err != nil {
		logAndInternalError(w, r, "failed to load post", "post_id", id, "error", err)
		return
	}

	form := PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	h.renderEditor(w, r, "post.edit_title", fmt.Sprintf(redirectEditPostID, id), form, nil)
}

// Update overwrites the post's fields. The author is left unchanged.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseIDParam(r)
	if err != nil {
		renderNotFound(w, r, h.renderer)
		return
	}
	action := fmt.Sprintf(redirectEditPostID, id)

	form := bindPostForm(r)
	if errs := validateForm(lang, form); errs != nil {
		h.renderEditor(w, r, "post.edit_title", action, form, errs)
		return
	}

	err = h.posts.Update(r.Context(), id, form.Input())
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		renderNotFound(w, r, h.renderer)
		return
	case errors.Is(err, service.ErrTitleTaken):
		h.renderEditor(w, r, "post.edit_title", action, form,
			map[string]string{"title": i18n.T(lang, "post.title_taken")})
		return
	case err != nil:
		logAndInternalError(w, r, "failed to update post", "post_id", id, "error", err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf(redirectPostID, id), http.StatusSeeOther)
}

// Delete removes a post and its comments. It is POST-only so the CSRF
// check covers it.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		renderNotFound(w, r, h.renderer)
		return
	}

	err = h.posts.Delete(r.Context(), id)
	if errors.Is(err, service.ErrPostNotFound) {
		renderNotFound(w, r, h.renderer)
		return
	}
	if err != nil {
		logAndInternalError(w, r, "failed to delete post", "post_id", id, "error", err)
		return
	}

	slog.InfoContext(r.Context(), "post deleted", "post_id", id, "user_id", middleware.GetUserID(r))
	http.Redirect(w, r, redirectHome, http.StatusSeeOther)
}

func (h *PostsHandler) renderEditor(w http.ResponseWriter, r *http.Request, headingKey, action string, form PostForm, errs map[string]string) {
	lang := middleware.GetLanguage(r)
	renderPage(w, r, h.renderer, pageMakePost, render.TemplateData{
		Title:  i18n.T(lang, headingKey),
		Data:   postFormView{HeadingKey: headingKey, Action: action},
		Form:   form,
		Errors: errs,
	})
}
