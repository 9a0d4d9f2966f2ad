// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
)

// PagesHandler serves the fixed informational pages.
type PagesHandler struct {
	renderer *render.Renderer
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(renderer *render.Renderer) *PagesHandler {
	return &PagesHandler{renderer: renderer}
}

// About renders the about page.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, pageAbout, render.TemplateData{
		Title: i18n.T(middleware.GetLanguage(r), "about.title"),
	})
}

// Contact renders the contact page.
func (h *PagesHandler) Contact(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, pageContact, render.TemplateData{
		Title: i18n.T(middleware.GetLanguage(r), "contact.title"),
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer)
}
