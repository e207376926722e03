package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFieldKind(t *testing.T) {
	cases := []struct {
		raw  string
		want FieldKind
		ok   bool
	}{
		{"", FieldKindText, true},
		{" Email ", FieldKindEmail, true},
		{"phone", FieldKindTel, true},
		{"tel", FieldKindTel, true},
		{"textarea", FieldKindTextArea, true},
		{"color", FieldKind("color"), false},
	}
	for _, tc := range cases {
		got, ok := ParseFieldKind(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseFieldKind(%q) = %q,%v want %q,%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFieldKind_InputType(t *testing.T) {
	got := []string{
		FieldKindText.InputType(),
		FieldKindEmail.InputType(),
		FieldKindTel.InputType(),
		FieldKindTextArea.InputType(),
		FieldKind("").InputType(),
	}
	want := []string{"text", "email", "tel", "", "text"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("input types mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultDefinition(t *testing.T) {
	def := DefaultDefinition()
	var required []string
	for _, field := range def.Fields {
		if field.Required {
			required = append(required, field.Name)
		}
	}
	if diff := cmp.Diff([]string{"company", "email"}, required); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
	if def.ResolvedFormType() != "contact_consultation" {
		t.Fatalf("unexpected form type %q", def.ResolvedFormType())
	}
	if _, ok := def.Field("phone"); !ok {
		t.Fatalf("expected phone field")
	}
	if _, ok := def.Field("fax"); ok {
		t.Fatalf("unexpected fax field")
	}
}

func TestNewFormField_DefaultsKind(t *testing.T) {
	got := NewFormField(FieldSpec{Name: "company", Required: true}, "ACME")
	want := FormField{Name: "company", Value: "ACME", Required: true, Kind: FieldKindText}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form field mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvedFormType_Override(t *testing.T) {
	def := FormDefinition{FormType: " partner "}
	if got := def.ResolvedFormType(); got != "partner" {
		t.Fatalf("expected trimmed override, got %q", got)
	}
}
