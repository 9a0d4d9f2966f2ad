// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestInit(t *testing.T) {
	if err := Init(nil, "pt"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	for _, lang := range SupportedLanguages {
		if TranslationCount(lang) == 0 {
			t.Errorf("expected %s translations to be loaded", lang)
		}
	}
	if DefaultLanguage() != "pt" {
		t.Errorf("DefaultLanguage() = %q, want pt", DefaultLanguage())
	}
}

func TestInit_UnsupportedDefault(t *testing.T) {
	if err := Init(nil, "de"); err == nil {
		t.Fatal("expected error for unsupported default language")
	}
}

func TestT(t *testing.T) {
	if err := Init(nil, "pt"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"en", "auth.logged_in", nil, "Logged in successfully!"},
		{"pt", "auth.logged_in", nil, "Logado com sucesso!"},
		{"pt", "auth.already_registered", nil, "Você já se registrou. Faça o login."},
		{"pt", "comment.login_required", nil, "Você precisa fazer login ou se registrar para comentar."},
		{"en", "post.posted_by", []any{"Ana", "March 01, 2026"}, "Posted by Ana on March 01, 2026"},
		{"pt", "footer.copyright", []any{2026}, "Direitos reservados © 2026"},
		// Unknown language uses the default language.
		{"de", "nav.logout", nil, "Sair"},
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			result := T(tt.lang, tt.key, tt.args...)
			if result != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, result, tt.expected)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil, "pt"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"pt", "pt"},
		{"en-US", "en"},
		{"pt-BR", "pt"},
		{"de", "pt"},
		{"", "pt"},
		{"en-US, pt;q=0.9", "en"},
		{"pt-BR, en;q=0.9", "pt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		lang     string
		expected bool
	}{
		{"en", true},
		{"pt", true},
		{"PT", true},
		{"ru", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.lang); got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.lang, got, tt.expected)
		}
	}
}

func loadKeys(t *testing.T, lang string) map[string]bool {
	t.Helper()
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	if msgFile.Language != lang {
		t.Errorf("%s declares language %q", path, msgFile.Language)
	}

	keys := make(map[string]bool, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		if keys[msg.ID] {
			t.Errorf("duplicate translation ID %q in %s", msg.ID, lang)
		}
		if msg.Translation == "" {
			t.Errorf("empty translation for %q in %s", msg.ID, lang)
		}
		keys[msg.ID] = true
	}
	return keys
}

func TestTranslationFilesMatch(t *testing.T) {
	ref := loadKeys(t, SupportedLanguages[0])
	for _, lang := range SupportedLanguages[1:] {
		keys := loadKeys(t, lang)
		for k := range ref {
			if !keys[k] {
				t.Errorf("key %q missing in %s", k, lang)
			}
		}
		for k := range keys {
			if !ref[k] {
				t.Errorf("key %q missing in %s", k, SupportedLanguages[0])
			}
		}
	}
}
