// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package app holds the application context built once at startup and the
// HTTP routes served from it.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ocms-blog/internal/cache"
	"github.com/olegiv/ocms-blog/internal/config"
	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
	"github.com/olegiv/ocms-blog/internal/service"
	"github.com/olegiv/ocms-blog/internal/store"
	"github.com/olegiv/ocms-blog/web"
)

// Options are the dependencies of an App. DB, Sessions and Config are
// required.
type Options struct {
	Config   *config.Config
	DB       *sql.DB
	Sessions *scs.SessionManager
	// Cache backs the post listing. Nil disables listing caching.
	Cache  cache.Cache
	Logger *slog.Logger

	// LoginProtection overrides the login throttle; zero fields take defaults.
	LoginProtection middleware.LoginProtectionConfig
	// CommentRate is comment submissions per second per IP, with burst
	// CommentBurst. Zero values take defaults.
	CommentRate  float64
	CommentBurst int

	// TemplatesFS and StaticFS default to the embedded web assets.
	TemplatesFS fs.FS
	StaticFS    fs.FS
}

// App is the application context shared by all requests. Every field is
// safe for concurrent use.
type App struct {
	cfg      *config.Config
	db       *sql.DB
	queries  *store.Queries
	sessions *scs.SessionManager
	cache    cache.Cache
	logger   *slog.Logger

	renderer *render.Renderer
	staticFS fs.FS

	accounts        *service.AccountService
	posts           *service.PostService
	comments        *service.CommentService
	loginProtection *middleware.LoginProtection
	commentLimiter  *middleware.RateLimiter
}

// Comment throttle defaults: a burst of 5, then one every 5 seconds.
const (
	defaultCommentRate  = 0.2
	defaultCommentBurst = 5
)

// New builds the App and parses the templates.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("app: config is required")
	}
	if opts.DB == nil {
		return nil, errors.New("app: database is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("app: session manager is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templatesFS := opts.TemplatesFS
	if templatesFS == nil {
		sub, err := fs.Sub(web.Templates, "templates")
		if err != nil {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
		templatesFS = sub
	}
	staticFS := opts.StaticFS
	if staticFS == nil {
		sub, err := fs.Sub(web.Static, "static")
		if err != nil {
			return nil, fmt.Errorf("loading static assets: %w", err)
		}
		staticFS = sub
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: opts.Sessions,
		IsDev:          opts.Config.IsDevelopment(),
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	commentRate, commentBurst := opts.CommentRate, opts.CommentBurst
	if commentRate <= 0 {
		commentRate = defaultCommentRate
	}
	if commentBurst <= 0 {
		commentBurst = defaultCommentBurst
	}

	queries := store.New(opts.DB)
	return &App{
		cfg:             opts.Config,
		db:              opts.DB,
		queries:         queries,
		sessions:        opts.Sessions,
		cache:           opts.Cache,
		logger:          logger,
		renderer:        renderer,
		staticFS:        staticFS,
		accounts:        service.NewAccountService(queries, logger),
		posts:           service.NewPostService(queries, opts.Cache, opts.Config.CacheTTL, logger),
		comments:        service.NewCommentService(queries, logger),
		loginProtection: middleware.NewLoginProtection(opts.LoginProtection),
		commentLimiter:  middleware.NewRateLimiter(commentRate, commentBurst, http.HandlerFunc(tooManyRequests)),
	}, nil
}

// tooManyRequests answers a throttled request with a localized 429.
func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	http.Error(w, i18n.T(middleware.GetLanguage(r), "auth.rate_limit"), http.StatusTooManyRequests)
}
