package render

import "strings"

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers suitable for a template global context:
//
//	translate(key) string
//	current_locale() string
func TemplateI18nFuncs(locale string, t Translator, cfg TemplateI18nConfig) map[string]any {
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	localizer := Localizer{Locale: locale, Translator: t, OnMissing: cfg.OnMissing}
	return map[string]any{
		translateName: func(key string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			return localizer.Text(key)
		},
		"current_locale": func() string {
			return locale
		},
	}
}
