package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// ValidationError is a recoverable, field-local failure.
type ValidationError struct {
	Field   string
	Kind    model.Validity
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Kind)
}

// FormError reports that a submit was blocked by one or more field failures.
type FormError struct {
	Fields []*ValidationError
}

func (e *FormError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation: form invalid"
	}
	names := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		names = append(names, field.Field)
	}
	return "validation: form invalid: " + strings.Join(names, ", ")
}

// Unwrap exposes the individual field errors to errors.As.
func (e *FormError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, len(e.Fields))
	for _, field := range e.Fields {
		out = append(out, field)
	}
	return out
}

// Field returns the error recorded for name, if any.
func (e *FormError) Field(name string) (*ValidationError, bool) {
	if e == nil {
		return nil, false
	}
	for _, field := range e.Fields {
		if field.Field == name {
			return field, true
		}
	}
	return nil, false
}
