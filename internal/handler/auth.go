// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
	"github.com/olegiv/ocms-blog/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	accounts        *service.AccountService
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable the
// per-email lockout.
func NewAuthHandler(accounts *service.AccountService, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		accounts:        accounts,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, RegisterForm{}, nil, "")
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	form := bindRegisterForm(r)

	if errs := validateForm(lang, form); errs != nil {
		h.renderRegister(w, r, form, errs, "")
		return
	}

	user, err := h.accounts.Register(r.Context(), service.Registration{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if errors.Is(err, service.ErrEmailTaken) {
		slog.InfoContext(r.Context(), "registration with existing email")
		h.renderRegister(w, r, form, nil, i18n.T(lang, "auth.already_registered"))
		return
	}
	if err != nil {
		logAndInternalError(w, r, "registration failed", "error", err)
		return
	}

	if !h.startSession(w, r, user.ID) {
		return
	}
	http.Redirect(w, r, redirectHome, http.StatusSeeOther)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, form RegisterForm, errs map[string]string, formErr string) {
	lang := middleware.GetLanguage(r)
	form.Password = ""
	renderPage(w, r, h.renderer, pageRegister, render.TemplateData{
		Title:  i18n.T(lang, "nav.register"),
		Form:   form,
		Errors: errs,
		Error:  formErr,
	})
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, LoginForm{}, nil, "")
}

// Login handles the login form submission. Unknown email and wrong
// password produce the same message, and a failed attempt never touches
// the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	form := bindLoginForm(r)

	if errs := validateForm(lang, form); errs != nil {
		h.renderLogin(w, r, http.StatusOK, form, errs, "")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsLocked(form.Email); locked {
			slog.WarnContext(r.Context(), "login attempt on locked email", "remote_addr", r.RemoteAddr)
			h.renderLogin(w, r, http.StatusTooManyRequests, form, nil,
				i18n.T(lang, "auth.too_many_attempts", formatDuration(remaining)))
			return
		}
	}

	user, err := h.accounts.Authenticate(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPasswordMismatch):
		slog.DebugContext(r.Context(), "login failed", "reason", err)
		if h.loginProtection != nil {
			if locked, d := h.loginProtection.RecordFailure(form.Email); locked {
				h.renderLogin(w, r, http.StatusTooManyRequests, form, nil,
					i18n.T(lang, "auth.too_many_attempts", formatDuration(d)))
				return
			}
		}
		h.renderLogin(w, r, http.StatusOK, form, nil, i18n.T(lang, "auth.invalid_credentials"))
		return
	case err != nil:
		logAndInternalError(w, r, "login failed", "error", err)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccess(form.Email)
	}

	if !h.startSession(w, r, user.ID) {
		return
	}
	slog.InfoContext(r.Context(), "user logged in", "user_id", user.ID)
	flashSuccess(w, r, h.renderer, redirectHome, i18n.T(lang, "auth.logged_in"))
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, form LoginForm, errs map[string]string, formErr string) {
	lang := middleware.GetLanguage(r)
	form.Password = ""
	renderStatus(w, r, h.renderer, status, pageLogin, render.TemplateData{
		Title:  i18n.T(lang, "nav.login"),
		Form:   form,
		Errors: errs,
		Error:  formErr,
	})
}

// Logout destroys the session and redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, r, "session destroy error", "error", err)
		return
	}
	if userID != 0 {
		slog.InfoContext(r.Context(), "user logged out", "user_id", userID)
	}
	http.Redirect(w, r, redirectHome, http.StatusFound)
}

// startSession renews the session token and stores the user id. It
// reports false after answering with 500.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userID int64) bool {
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, r, "session renewal error", "error", err)
		return false
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, userID)
	return true
}

// formatDuration renders a lockout duration for messages, rounded up to
// whole minutes.
func formatDuration(d time.Duration) string {
	mins := int(math.Ceil(d.Minutes()))
	if mins < 1 {
		mins = 1
	}
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	hours, rest := mins/60, mins%60
	if rest == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, rest)
}
