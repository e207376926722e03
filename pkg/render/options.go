package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the controller state.
type RenderOptions struct {
	// Locale selects the catalog used for labels and notices.
	Locale string
	// Translator resolves message keys. Nil falls back to OnMissing.
	Translator Translator
	// OnMissing controls what is displayed for unresolved keys.
	OnMissing MissingTranslationHandler
	// Action is the URL the form posts to.
	Action string
	// CloseURL is the link target of the close control when the page runtime
	// is not loaded. Empty renders "/".
	CloseURL string
	// EventsURL receives button and scroll events from the page runtime.
	// Empty disables event reporting.
	EventsURL string
	// Hidden lists extra inputs such as the CSRF token.
	Hidden []HiddenField
	// FormErrors surfaces form-level messages above the fields.
	FormErrors []string
	// CloseAfterMillis is exposed to the page runtime so it can hide the modal
	// after a successful submission. Zero disables the hint.
	CloseAfterMillis int64
	// Theme carries an optional go-theme selection resolved by the caller.
	Theme *theme.Selection
}

// Localizer returns a Localizer bound to the options.
func (o RenderOptions) Localizer() Localizer {
	return Localizer{Locale: o.Locale, Translator: o.Translator, OnMissing: o.OnMissing}
}
