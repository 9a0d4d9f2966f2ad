// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestGravatarURL(t *testing.T) {
	want := "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?d=retro&r=g&s=100"
	for _, email := range []string{"test@example.com", "  Test@Example.COM "} {
		if got := GravatarURL(email); got != want {
			t.Errorf("GravatarURL(%q) = %q, want %q", email, got, want)
		}
	}
}

func TestSanitizeHTML(t *testing.T) {
	r := newTestRenderer(t, nil)

	tests := []struct {
		input   string
		keep    string
		dropped string
	}{
		{`<p>Hi <b>there</b></p>`, "<b>there</b>", ""},
		{`<p onclick="x()">Hi</p>`, "<p>Hi</p>", "onclick"},
		{`<script>alert(1)</script><p>ok</p>`, "<p>ok</p>", "<script>"},
		{`<a href="javascript:alert(1)">x</a>`, "x", "javascript:"},
	}
	for _, tt := range tests {
		got := string(r.SanitizeHTML(tt.input))
		if !strings.Contains(got, tt.keep) {
			t.Errorf("SanitizeHTML(%q) = %q, want to keep %q", tt.input, got, tt.keep)
		}
		if tt.dropped != "" && strings.Contains(got, tt.dropped) {
			t.Errorf("SanitizeHTML(%q) = %q, should drop %q", tt.input, got, tt.dropped)
		}
	}
}

func TestMarkdown(t *testing.T) {
	r := newTestRenderer(t, nil)

	got := string(r.Markdown("**bold** and _em_"))
	if !strings.Contains(got, "<strong>bold</strong>") || !strings.Contains(got, "<em>em</em>") {
		t.Errorf("Markdown = %q", got)
	}

	got = string(r.Markdown("hi <script>alert(1)</script>"))
	if strings.Contains(got, "<script>") {
		t.Errorf("Markdown kept raw script: %q", got)
	}

	got = string(r.Markdown("line one\nline two"))
	if !strings.Contains(got, "<br") {
		t.Errorf("Markdown should keep hard wraps: %q", got)
	}
}

func TestTemplateFuncs_Present(t *testing.T) {
	funcs := (&Renderer{}).TemplateFuncs()
	for _, name := range []string{"T", "gravatar", "sanitize", "markdown", "lower", "truncate", "field", "dict"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("TemplateFuncs missing %s", name)
		}
	}
}

func TestTemplateFuncs_Truncate(t *testing.T) {
	truncate := (&Renderer{}).TemplateFuncs()["truncate"].(func(string, int) string)
	if got := truncate("olá mundo", 3); got != "olá..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

func TestTemplateFuncs_Dict(t *testing.T) {
	dict := (&Renderer{}).TemplateFuncs()["dict"].(func(...any) map[string]any)
	m := dict("name", "email", "rows", 3)
	if m["name"] != "email" || m["rows"] != 3 {
		t.Errorf("dict = %v", m)
	}
	if dict("odd") != nil {
		t.Error("odd argument count should return nil")
	}
}
