// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded page templates and renders them with
// the per-request layout data: identity, language and flash messages.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/store"
)

// Session keys used for flash messages.
const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"
)

// Flash types understood by the layout.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashError   = "error"
)

// blankLinesRegex matches runs of whitespace-only lines left behind by
// template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n[ \t]*){2,}`)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
	logger         *slog.Logger

	sanitizer *bluemonday.Policy
	markdown  goldmark.Markdown
	now       func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
	Logger         *slog.Logger
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
		logger:         logger,
		sanitizer:      bluemonday.UGCPolicy(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		now: time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates builds one template set per page: base layout, all
// partials, then the page itself.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	if templatesFS == nil {
		return fmt.Errorf("templates filesystem is nil")
	}

	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}
	pages, err := templateFiles(templatesFS, "pages")
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := []string{"layouts/base.html"}
		files = append(files, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	r.logger.Debug("templates parsed", "pages", len(r.templates))
	return nil
}

// templateFiles returns all .html files in a directory. A missing
// directory yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title string
	Lang  string
	// User is the resolved identity, nil when anonymous.
	User    *store.User
	IsAdmin bool

	Flash     string
	FlashType string

	// Error is a form-level message; Errors holds per-field messages.
	Error  string
	Errors map[string]string
	// Form carries submitted values back into a re-rendered form.
	Form any

	Data        any
	CurrentYear int
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page with the given status code. The page is
// executed into a buffer first so a template error never leaves a
// half-written response.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	r.fillLayout(req, &data)

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	out := buf.Bytes()
	if !r.isDev {
		out = blankLinesRegex.ReplaceAll(out, []byte("\n"))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(out)
	return err
}

// fillLayout adds the data every page layout needs.
func (r *Renderer) fillLayout(req *http.Request, data *TemplateData) {
	data.CurrentYear = r.now().Year()
	if data.Lang == "" {
		data.Lang = middleware.GetLanguage(req)
	}
	if data.User == nil {
		data.User = middleware.GetUser(req)
	}
	data.IsAdmin = middleware.IsAdmin(data.User)

	if r.sessionManager == nil || data.Flash != "" {
		return
	}
	ctx := req.Context()
	if flash := r.sessionManager.PopString(ctx, flashKey); flash != "" {
		data.Flash = flash
		data.FlashType = r.sessionManager.PopString(ctx, flashTypeKey)
		if data.FlashType == "" {
			data.FlashType = FlashInfo
		}
	}
}

// SetFlash stores a message shown on the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), flashKey, message)
		r.sessionManager.Put(req.Context(), flashTypeKey, flashType)
	}
}
