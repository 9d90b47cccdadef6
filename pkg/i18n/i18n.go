// Package i18n loads the embedded message catalogs and negotiates request locales.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog translates message keys for the supported locales
type Catalog struct {
	bundle     *goi18n.Bundle
	localizers map[model.Locale]*goi18n.Localizer
	logger     *zap.Logger
}

// NewCatalog loads every locales/active.<tag>.json file into a bundle
func NewCatalog(logger *zap.Logger) (*Catalog, error) {
	bundle := goi18n.NewBundle(language.MustParse(string(model.DefaultLocale)))
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			logger.Debug("Skipping locale file", zap.String("file", name))
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("failed to load locale file %s: %w", name, err)
		}
		logger.Debug("Loaded locale file", zap.String("file", name))
	}

	localizers := make(map[model.Locale]*goi18n.Localizer, len(model.SupportedLocales))
	for _, locale := range model.SupportedLocales {
		localizers[locale] = goi18n.NewLocalizer(bundle, string(locale))
	}

	return &Catalog{bundle: bundle, localizers: localizers, logger: logger}, nil
}

// Translate resolves key for locale. Missing keys come back unchanged.
func (c *Catalog) Translate(locale model.Locale, key string, values map[string]string) string {
	localizer, ok := c.localizers[locale]
	if !ok {
		localizer = c.localizers[model.DefaultLocale]
	}

	cfg := &goi18n.LocalizeConfig{MessageID: key}
	if len(values) > 0 {
		cfg.TemplateData = values
	}

	msg, err := localizer.Localize(cfg)
	if err != nil {
		c.logger.Debug("Missing translation",
			zap.String("locale", string(locale)),
			zap.String("key", key),
			zap.Error(err))
		return key
	}
	return msg
}

// Translator binds Translate to a locale
func (c *Catalog) Translator(locale model.Locale) func(key string, values map[string]string) string {
	return func(key string, values map[string]string) string {
		return c.Translate(locale, key, values)
	}
}

// StatusLabel returns the localized label for a status tier
func (c *Catalog) StatusLabel(locale model.Locale, status model.Status) string {
	if !status.IsValid() {
		status = model.StatusGray
	}
	return c.Translate(locale, "status."+string(status)+".label", nil)
}

// StatusDescription returns the localized fundraising band for a status tier
func (c *Catalog) StatusDescription(locale model.Locale, status model.Status) string {
	if !status.IsValid() {
		status = model.StatusGray
	}
	return c.Translate(locale, "status."+string(status)+".description", nil)
}

// Achievement returns a copy of a with localized title and description
func (c *Catalog) Achievement(locale model.Locale, a model.Achievement) model.Achievement {
	a.Title = c.Translate(locale, "achievement."+a.ID+".title", nil)
	a.Description = c.Translate(locale, "achievement."+a.ID+".description", nil)
	return a
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(model.SupportedLocales))
	for i, locale := range model.SupportedLocales {
		tags[i] = language.MustParse(string(locale))
	}
	return tags
}

// ParseLocale accepts a supported locale path segment such as "en" or "zh-TW"
func ParseLocale(raw string) (model.Locale, bool) {
	for _, locale := range model.SupportedLocales {
		if strings.EqualFold(raw, string(locale)) {
			return locale, true
		}
	}
	return "", false
}

// MatchLocale picks the best supported locale for an Accept-Language header,
// falling back to the default locale
func MatchLocale(acceptLanguage string) model.Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return model.DefaultLocale
	}
	_, index := language.MatchStrings(matcher, acceptLanguage)
	return model.SupportedLocales[index]
}
