// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the message catalog for the blog UI.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// FallbackLang is consulted when a key is missing in the requested language.
const FallbackLang = "en"

// SupportedLanguages lists the UI languages.
var SupportedLanguages = []string{"en", "pt"}

var (
	catalogMu sync.RWMutex
	catalog   *Catalog
)

// Init loads all locales and sets the language used when a request
// matches none of them.
func Init(logger *slog.Logger, defaultLang string) error {
	defaultLang = strings.ToLower(defaultLang)
	if defaultLang == "" {
		defaultLang = FallbackLang
	}
	if !IsSupported(defaultLang) {
		return fmt.Errorf("default language %q is not supported (supported: %v)", defaultLang, SupportedLanguages)
	}

	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
		logger:       logger,
	}

	// The default language goes first so the matcher prefers it on ties.
	c.supported = append(c.supported, language.MustParse(defaultLang))
	for _, lang := range SupportedLanguages {
		if lang != defaultLang {
			c.supported = append(c.supported, language.MustParse(lang))
		}
	}
	c.matcher = language.NewMatcher(c.supported)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}

	catalogMu.Lock()
	catalog = c
	catalogMu.Unlock()

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages, "default", defaultLang)
	}
	return nil
}

func current() *Catalog {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	return catalog
}

func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}
	return nil
}

func (c *Catalog) lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if tr, ok := c.translations[lang][key]; ok {
		return tr, true
	}
	if lang != c.defaultLang {
		if tr, ok := c.translations[c.defaultLang][key]; ok {
			return tr, true
		}
	}
	tr, ok := c.translations[FallbackLang][key]
	return tr, ok
}

// T translates key into lang. Unknown languages use the default language,
// missing keys fall back to English and then to the key itself.
// Arguments are applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	c := current()
	if c == nil {
		return key
	}

	translation, ok := c.lookup(lang, key)
	if !ok {
		if c.logger != nil {
			c.logger.Debug("missing translation", "key", key, "lang", lang)
		}
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// DefaultLanguage returns the language used when nothing else matches.
func DefaultLanguage() string {
	if c := current(); c != nil {
		return c.defaultLang
	}
	return FallbackLang
}

// MatchLanguage finds the best supported language for an Accept-Language
// header value or a bare language code.
func MatchLanguage(acceptLang string) string {
	c := current()
	if c == nil {
		return FallbackLang
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return c.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.supported) {
		return c.defaultLang
	}
	base, _ := c.supported[idx].Base()
	return base.String()
}

// IsSupported checks if a language code is supported.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang string) int {
	c := current()
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations[lang])
}
