// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"html/template"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/ocms-blog/internal/i18n"
)

// Gravatar settings for commenter avatars.
const (
	gravatarBase    = "https://www.gravatar.com/avatar/"
	gravatarSize    = "100"
	gravatarRating  = "g"
	gravatarDefault = "retro"
)

// GravatarURL returns the avatar URL for an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", gravatarSize)
	q.Set("r", gravatarRating)
	q.Set("d", gravatarDefault)
	return gravatarBase + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}

// SanitizeHTML cleans stored post HTML with the UGC policy.
func (r *Renderer) SanitizeHTML(s string) template.HTML {
	return template.HTML(r.sanitizer.Sanitize(s))
}

// Markdown renders comment text as Markdown and sanitises the result.
func (r *Renderer) Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(s), &buf); err != nil {
		r.logger.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes()))
}

// TemplateFuncs returns the functions available to every template.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": func(lang, key string, args ...any) string {
			return i18n.T(lang, key, args...)
		},
		"gravatar": GravatarURL,
		"sanitize": r.SanitizeHTML,
		"markdown": r.Markdown,
		"lower":    strings.ToLower,
		"truncate": func(s string, length int) string {
			if utf8.RuneCountInString(s) <= length {
				return s
			}
			return string([]rune(s)[:length]) + "..."
		},
		"field": func(errs map[string]string, name string) string {
			return errs[name]
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
	}
}
