package formdef

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

var (
	// ErrNoFields is returned for definitions without inputs.
	ErrNoFields = errors.New("formdef: definition has no fields")
	// ErrInvalidField wraps field level definition problems.
	ErrInvalidField = errors.New("formdef: invalid field")
)

// Default returns the consultation form used by the landing page.
func Default() model.FormDefinition {
	return model.DefaultDefinition()
}

// Validate checks that every field has a unique name and a known kind.
// Kinds are normalised in place.
func Validate(def *model.FormDefinition) error {
	if def == nil || len(def.Fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidField, i)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidField, field.Name)
		}
		seen[field.Name] = struct{}{}

		kind, ok := model.ParseFieldKind(string(field.Kind))
		if !ok {
			return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidField, field.Name, field.Kind)
		}
		field.Kind = kind
		if field.Label == "" {
			field.Label = field.Name
		}
	}
	if strings.TrimSpace(def.ID) == "" {
		def.ID = "contact"
	}
	return nil
}
