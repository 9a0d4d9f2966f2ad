// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ocms-blog/internal/handler"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/service"
	"github.com/olegiv/ocms-blog/internal/store"
)

// Routes builds the router with the full middleware stack.
func (a *App) Routes() http.Handler {
	authHandler := handler.NewAuthHandler(a.accounts, a.renderer, a.sessions, a.loginProtection)
	postsHandler := handler.NewPostsHandler(a.posts, a.comments, a.renderer)
	pagesHandler := handler.NewPagesHandler(a.renderer)
	adminHandler := handler.NewAdminHandler(a.queries, a.cache, a.renderer)
	healthHandler := handler.NewHealthHandler(a.db)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(a.cfg.IsDevelopment())))

	// Outside the session stack: no cookie, no identity.
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Handle(handler.RouteStatic, http.StripPrefix("/static/", http.FileServerFS(a.staticFS)))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.LoadAndSave)
		r.Use(middleware.Language(a.sessions))
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(
			[]byte(a.cfg.SessionSecret), a.cfg.IsDevelopment(), a.cfg.ServerAddr())))
		r.Use(middleware.LoadUser(a.sessions, a.lookupUser))

		r.Get(handler.RouteRoot, postsHandler.Index)
		r.Get(handler.RoutePost, postsHandler.Show)
		r.With(a.commentLimiter.Middleware).Post(handler.RoutePost, postsHandler.Comment)
		r.Get(handler.RouteAbout, pagesHandler.About)
		r.Get(handler.RouteContact, pagesHandler.Contact)
		r.Get(handler.RouteLogout, authHandler.Logout)

		r.Get(handler.RouteRegister, authHandler.RegisterForm)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Group(func(r chi.Router) {
			r.Use(a.loginProtection.Middleware)
			r.Post(handler.RouteRegister, authHandler.Register)
			r.Post(handler.RouteLogin, authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get(handler.RouteAdmin, adminHandler.Dashboard)
			r.Get(handler.RouteNewPost, postsHandler.NewForm)
			r.Post(handler.RouteNewPost, postsHandler.Create)
			r.Get(handler.RouteEditPost, postsHandler.EditForm)
			r.Post(handler.RouteEditPost, postsHandler.Update)
			r.Post(handler.RouteDeletePost, postsHandler.Delete)
		})

		r.NotFound(pagesHandler.NotFound)
	})

	return r
}

// lookupUser adapts AccountService.User to middleware.UserLookup.
func (a *App) lookupUser(ctx context.Context, id int64) (*store.User, error) {
	user, err := a.accounts.User(ctx, id)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
