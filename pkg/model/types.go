package model

import "strings"

// FieldKind enumerates the input kinds a contact form can expose.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTel      FieldKind = "tel"
	FieldKindTextArea FieldKind = "textarea"
)

// Valid reports whether the kind is one of the supported inputs.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindEmail, FieldKindTel, FieldKindTextArea:
		return true
	default:
		return false
	}
}

// InputType returns the HTML input type used to render the kind. Text areas
// are rendered with their own element and report an empty type.
func (k FieldKind) InputType() string {
	switch k {
	case FieldKindEmail:
		return "email"
	case FieldKindTel:
		return "tel"
	case FieldKindTextArea:
		return ""
	default:
		return "text"
	}
}

// ParseFieldKind normalises a raw kind identifier. Unknown values return false.
func ParseFieldKind(raw string) (FieldKind, bool) {
	kind := FieldKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case "":
		return FieldKindText, true
	case "phone":
		return FieldKindTel, true
	}
	return kind, kind.Valid()
}

// Validity is the derived validation state of a single field.
type Validity string

const (
	Valid           Validity = "valid"
	InvalidRequired Validity = "invalid-required"
	InvalidFormat   Validity = "invalid-format"
)

// Status tracks the submission lifecycle of a form instance.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// FieldSpec describes one input of a form definition.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Kind        FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
}

// FormDefinition is the declarative description of a contact form.
type FormDefinition struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	FormType    string      `json:"formType,omitempty" yaml:"formType,omitempty"`
	SubmitLabel string      `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// DefaultFormType is the analytics form_type reported for consultation forms.
const DefaultFormType = "contact_consultation"

// Field returns the spec registered under name.
func (d FormDefinition) Field(name string) (FieldSpec, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// ResolvedFormType returns FormType, falling back to DefaultFormType.
func (d FormDefinition) ResolvedFormType() string {
	if ft := strings.TrimSpace(d.FormType); ft != "" {
		return ft
	}
	return DefaultFormType
}

// FormField is one user-editable input together with its current value.
type FormField struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Required bool      `json:"required,omitempty"`
	Kind     FieldKind `json:"kind"`
}

// NewFormField pairs a spec with a live value.
func NewFormField(spec FieldSpec, value string) FormField {
	kind := spec.Kind
	if kind == "" {
		kind = FieldKindText
	}
	return FormField{
		Name:     spec.Name,
		Value:    value,
		Required: spec.Required,
		Kind:     kind,
	}
}

// DefaultDefinition returns the landing page consultation form.
func DefaultDefinition() FormDefinition {
	return FormDefinition{
		ID:          "contact",
		Title:       "무료 상담 신청",
		Subtitle:    "AI SNS 마케팅 전문가가 24시간 내에 연락드립니다.",
		FormType:    DefaultFormType,
		SubmitLabel: "상담 신청하기",
		Fields: []FieldSpec{
			{Name: "company", Label: "회사명", Placeholder: "회사명을 입력해주세요", Kind: FieldKindText, Required: true},
			{Name: "email", Label: "이메일", Placeholder: "example@company.com", Kind: FieldKindEmail, Required: true},
			{Name: "phone", Label: "연락처", Placeholder: "010-0000-0000", Kind: FieldKindTel},
			{Name: "message", Label: "문의 내용", Placeholder: "마케팅 고민을 자유롭게 적어주세요", Kind: FieldKindTextArea},
		},
	}
}
