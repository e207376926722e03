package vanilla

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Class names shared with the page stylesheet.
const (
	ClassFieldError   = "form-error"
	ClassErrorMessage = "error-message"
)

func (r *Renderer) viewData(snap elements.Snapshot, opts render.RenderOptions, selection *theme.Selection) map[string]any {
	def := snap.Definition
	localizer := opts.Localizer()
	formID := def.ID
	if formID == "" {
		formID = "contact"
	}

	fields := make([]map[string]any, 0, len(snap.Inputs))
	for _, input := range snap.Inputs {
		fields = append(fields, fieldView(input))
	}

	hidden := make([]map[string]any, 0, len(opts.Hidden))
	for _, field := range render.SortedHiddenFields(opts.Hidden...) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	base := strings.TrimSuffix(r.assetBase, "/")
	themeData := buildThemeView(selection)
	stylesheet := themeData.Stylesheet
	if stylesheet == "" {
		stylesheet = base + "/" + StylesheetName
	}
	closeURL := opts.CloseURL
	if closeURL == "" {
		closeURL = "/"
	}

	data := map[string]any{
		"form": map[string]any{
			"id":          formID,
			"title":       def.Title,
			"subtitle":    def.Subtitle,
			"description": sanitizeDescription(r.policy, def.Description),
			"form_type":   def.ResolvedFormType(),
			"action":      opts.Action,
		},
		"open":           snap.Open,
		"fields":         fields,
		"hidden":         hidden,
		"form_errors":    opts.FormErrors,
		"notice_success": snap.Notices.Success,
		"notice_alerts":  snap.Notices.Alerts,
		"submit": map[string]any{
			"label":    snap.Submit.Label,
			"disabled": snap.Submit.Disabled,
		},
		"close_after_ms": opts.CloseAfterMillis,
		"close_url":      closeURL,
		"events_url":     opts.EventsURL,
		"classes":        map[string]any{"field_error": ClassFieldError, "error_message": ClassErrorMessage},
		"labels": map[string]any{
			"close":        localizer.Text(render.MessageModalClose),
			"required":     localizer.Text(render.MessageRequiredMarker),
			"form_invalid": localizer.Text(render.MessageFormInvalid),
		},
		"theme":      map[string]any{"name": themeData.Name, "variant": themeData.Variant, "css_vars": themeData.CSSVars},
		"stylesheet": stylesheet,
		"script":     base + "/" + ScriptName,
		"locale":     opts.Locale,
	}
	for name, fn := range render.TemplateI18nFuncs(opts.Locale, opts.Translator, render.TemplateI18nConfig{OnMissing: opts.OnMissing}) {
		data[name] = fn
	}
	return data
}

func fieldView(input elements.InputState) map[string]any {
	spec := input.Spec
	kind := spec.Kind
	if kind == "" {
		kind = model.FieldKindText
	}
	label := spec.Label
	if label == "" {
		label = spec.Name
	}
	return map[string]any{
		"name":        spec.Name,
		"label":       label,
		"placeholder": spec.Placeholder,
		"kind":        string(kind),
		"input_type":  kind.InputType(),
		"textarea":    kind == model.FieldKindTextArea,
		"required":    spec.Required,
		"value":       input.Value,
		"invalid":     input.Invalid,
		"message":     input.Message,
	}
}
