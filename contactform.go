package contactform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/transport"
)

// FormDefinition aliases model.FormDefinition for callers that only need the
// top-level package.
type FormDefinition = model.FormDefinition

// Payload is the field name to value map handed to a transport.
type Payload = transport.Payload

// RenderOptions describes per-request overrides that renderers can use to
// surface hidden inputs, form-level errors and locale choices.
type RenderOptions = render.RenderOptions

// DefaultDefinition returns the landing page consultation form.
func DefaultDefinition() FormDefinition {
	return formdef.Default()
}

// NewHeadless builds the in-memory element set for def and a controller
// driving it. It is the simplest way to run the form without a browser.
func NewHeadless(def FormDefinition, options ...controller.Option) (*elements.Form, *controller.Controller, error) {
	def.Fields = append([]model.FieldSpec(nil), def.Fields...)
	if err := formdef.Validate(&def); err != nil {
		return nil, nil, err
	}
	form := elements.NewForm(def)
	ctrl, err := controller.New(def, form.Elements(), options...)
	if err != nil {
		return nil, nil, fmt.Errorf("contactform: %w", err)
	}
	return form, ctrl, nil
}

// GenerateHTML renders the landing page wrapper with the modal for def using
// the vanilla renderer. Pass open to render the modal visible.
func GenerateHTML(ctx context.Context, def FormDefinition, open bool, opts RenderOptions, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	form, ctrl, err := NewHeadless(def)
	if err != nil {
		return nil, err
	}
	if open {
		ctrl.OpenModal()
	}
	return renderer.RenderPage(ctx, form.Snapshot(), opts)
}
