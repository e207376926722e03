package controller

import (
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// FormState is a point-in-time snapshot of a controller.
type FormState struct {
	Open   bool
	Status model.Status
	Fields []model.FormField
	Errors map[string]validation.ValidationError
}

// Validity returns the visible validity of name. Fields without a marker
// report model.Valid.
func (s FormState) Validity(name string) model.Validity {
	if err, ok := s.Errors[name]; ok {
		return err.Kind
	}
	return model.Valid
}

// Value returns the current value of name.
func (s FormState) Value(name string) string {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// Values returns every field value keyed by name.
func (s FormState) Values() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, field := range s.Fields {
		out[field.Name] = field.Value
	}
	return out
}
