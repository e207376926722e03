package elements

import (
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/model"
)

// DefaultSubmitLabel is used when a definition has no submit label.
const DefaultSubmitLabel = "Submit"

// Form bundles the handles of one modal instance.
type Form struct {
	Definition model.FormDefinition
	Dialog     *Dialog
	Inputs     []*Input
	Submit     *Button
	Notices    *Notices
}

// InputState is the observable state of an Input.
type InputState struct {
	Spec    model.FieldSpec
	Value   string
	Focused bool
	Invalid bool
	Message string
}

// ButtonState is the observable state of a Button.
type ButtonState struct {
	Label    string
	Disabled bool
}

// NoticeState holds the visible notices.
type NoticeState struct {
	Success string
	Alerts  []string
}

// Snapshot is a consistent read of every element of a Form.
type Snapshot struct {
	Definition   model.FormDefinition
	Open         bool
	ScrollLocked bool
	Inputs       []InputState
	Submit       ButtonState
	Notices      NoticeState
}

// NewForm builds one handle per field of def.
func NewForm(def model.FormDefinition) *Form {
	label := def.SubmitLabel
	if label == "" {
		label = DefaultSubmitLabel
	}
	form := &Form{
		Definition: def,
		Dialog:     &Dialog{},
		Inputs:     make([]*Input, 0, len(def.Fields)),
		Submit:     NewButton(label),
		Notices:    &Notices{},
	}
	for _, spec := range def.Fields {
		form.Inputs = append(form.Inputs, NewInput(spec))
	}
	return form
}

// Elements returns the handles in the shape the controller expects.
func (f *Form) Elements() controller.Elements {
	fields := make([]controller.Field, 0, len(f.Inputs))
	for _, input := range f.Inputs {
		fields = append(fields, input)
	}
	return controller.Elements{
		Dialog:  f.Dialog,
		Page:    f.Dialog,
		Fields:  fields,
		Submit:  f.Submit,
		Notices: f.Notices,
	}
}

// Input returns the handle for name.
func (f *Form) Input(name string) (*Input, bool) {
	for _, input := range f.Inputs {
		if input.Name() == name {
			return input, true
		}
	}
	return nil, false
}

// Fill sets the values present in values, leaving the other inputs untouched.
func (f *Form) Fill(values map[string]string) {
	for _, input := range f.Inputs {
		if value, ok := values[input.Name()]; ok {
			input.SetValue(value)
		}
	}
}

// Snapshot reads every element.
func (f *Form) Snapshot() Snapshot {
	snap := Snapshot{
		Definition:   f.Definition,
		Open:         f.Dialog.Visible(),
		ScrollLocked: f.Dialog.ScrollLocked(),
		Inputs:       make([]InputState, 0, len(f.Inputs)),
		Submit:       f.Submit.Snapshot(),
		Notices:      f.Notices.Snapshot(),
	}
	for _, input := range f.Inputs {
		snap.Inputs = append(snap.Inputs, input.Snapshot())
	}
	return snap
}

// Input returns the state of name from the snapshot.
func (s Snapshot) Input(name string) (InputState, bool) {
	for _, input := range s.Inputs {
		if input.Spec.Name == name {
			return input, true
		}
	}
	return InputState{}, false
}

// Errors returns the marker messages keyed by field name.
func (s Snapshot) Errors() map[string]string {
	out := make(map[string]string)
	for _, input := range s.Inputs {
		if input.Invalid {
			out[input.Spec.Name] = input.Message
		}
	}
	return out
}
