package formdef

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	extensionKind        = "x-contactform-kind"
	extensionOrder       = "x-contactform-order"
	extensionPlaceholder = "x-contactform-placeholder"
	extensionFormType    = "x-contactform-form-type"

	// textAreaThreshold is the maxLength above which a string becomes a
	// free-form text area.
	textAreaThreshold = 200
)

// ErrOperationNotFound is returned when operationID is absent.
var ErrOperationNotFound = errors.New("formdef: operation not found")

// FromOpenAPI derives a definition from the request body of operationID.
// Properties are ordered by x-contactform-order, then by name.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (model.FormDefinition, error) {
	if err := ctx.Err(); err != nil {
		return model.FormDefinition{}, err
	}
	if len(raw) == 0 {
		return model.FormDefinition{}, errors.New("formdef: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("formdef: load openapi: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return model.FormDefinition{}, fmt.Errorf("formdef: validate openapi: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(op)
	if schema == nil || len(schema.Properties) == 0 {
		return model.FormDefinition{}, fmt.Errorf("formdef: operation %q has no request properties", operationID)
	}

	def := model.FormDefinition{
		ID:          operationID,
		Title:       firstNonEmpty(schema.Title, op.Summary),
		Description: firstNonEmpty(op.Description, schema.Description),
		FormType:    stringExtension(op.Extensions, extensionFormType),
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	for _, name := range orderedProperties(schema.Properties) {
		prop := schema.Properties[name].Value
		if prop == nil || !isStringSchema(prop) {
			continue
		}
		_, req := required[name]
		def.Fields = append(def.Fields, model.FieldSpec{
			Name:        name,
			Label:       firstNonEmpty(prop.Title, name),
			Placeholder: placeholder(prop),
			Kind:        kindOf(prop),
			Required:    req,
		})
	}

	if err := Validate(&def); err != nil {
		return model.FormDefinition{}, err
	}
	return def, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name, ref := range props {
		if ref != nil && ref.Value != nil {
			names = append(names, name)
		}
	}
	order := func(name string) float64 {
		if value, ok := props[name].Value.Extensions[extensionOrder].(float64); ok {
			return value
		}
		return float64(len(names) + 1000)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := order(names[i]), order(names[j])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

func isStringSchema(schema *openapi3.Schema) bool {
	return schema.Type == nil || schema.Type.Is(openapi3.TypeString)
}

func kindOf(schema *openapi3.Schema) model.FieldKind {
	if raw := stringExtension(schema.Extensions, extensionKind); raw != "" {
		if kind, ok := model.ParseFieldKind(raw); ok {
			return kind
		}
	}
	switch strings.ToLower(schema.Format) {
	case "email":
		return model.FieldKindEmail
	case "tel", "phone":
		return model.FieldKindTel
	}
	if schema.MaxLength != nil && *schema.MaxLength > textAreaThreshold {
		return model.FieldKindTextArea
	}
	return model.FieldKindText
}

func placeholder(schema *openapi3.Schema) string {
	if value := stringExtension(schema.Extensions, extensionPlaceholder); value != "" {
		return value
	}
	if example, ok := schema.Example.(string); ok {
		return example
	}
	return ""
}

func stringExtension(ext map[string]any, key string) string {
	value, _ := ext[key].(string)
	return strings.TrimSpace(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
