// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocms-blog/internal/cache"
	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
	"github.com/olegiv/ocms-blog/internal/service"
	"github.com/olegiv/ocms-blog/internal/store"
)

// AdminHandler serves the admin landing page.
type AdminHandler struct {
	queries  *store.Queries
	cache    cache.Cache
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler. c may be nil when the
// listing is not cached.
func NewAdminHandler(queries *store.Queries, c cache.Cache, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{queries: queries, cache: c, renderer: renderer}
}

// dashboardView is the data of the admin page. Cache is nil when the
// backend keeps no counters.
type dashboardView struct {
	service.SiteStats
	Cache *cache.Stats
}

// Dashboard shows user, post and comment totals and the listing cache
// counters.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := service.Stats(r.Context(), h.queries)
	if err != nil {
		logAndInternalError(w, r, "failed to load site stats", "error", err)
		return
	}

	view := dashboardView{SiteStats: stats}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		cs := sp.Stats()
		view.Cache = &cs
	}

	renderPage(w, r, h.renderer, pageAdmin, render.TemplateData{
		Title: i18n.T(middleware.GetLanguage(r), "admin.title"),
		Data:  view,
	})
}
