// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ocms-blog/internal/i18n"
)

// Language picks the UI language for a request, in order: a supported
// ?lang= query parameter (remembered in the session), the session
// preference, the Accept-Language header, the catalog default.
// It must run inside sm.LoadAndSave.
func Language(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			lang := ""
			if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && i18n.IsSupported(q) {
				lang = q
				if sm.GetString(ctx, SessionKeyLang) != q {
					sm.Put(ctx, SessionKeyLang, q)
				}
			}
			if lang == "" {
				if s := sm.GetString(ctx, SessionKeyLang); i18n.IsSupported(s) {
					lang = s
				}
			}
			if lang == "" {
				if accept := r.Header.Get("Accept-Language"); accept != "" {
					lang = i18n.MatchLanguage(accept)
				}
			}
			if lang == "" {
				lang = i18n.DefaultLanguage()
			}

			next.ServeHTTP(w, r.WithContext(WithLanguage(ctx, lang)))
		})
	}
}

// WithLanguage returns a context carrying lang.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}

// GetLanguage returns the request language, or the catalog default.
func GetLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage()
}
