package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		field model.FormField
		want  validation.Result
	}{
		{
			name:  "required empty",
			field: model.FormField{Name: "company", Required: true, Kind: model.FieldKindText},
			want:  validation.Result{Field: "company", Validity: model.InvalidRequired, MessageKey: validation.MessageRequired},
		},
		{
			name:  "required whitespace only",
			field: model.FormField{Name: "company", Value: "   \t", Required: true, Kind: model.FieldKindText},
			want:  validation.Result{Field: "company", Validity: model.InvalidRequired, MessageKey: validation.MessageRequired},
		},
		{
			name:  "required email empty reports required first",
			field: model.FormField{Name: "email", Required: true, Kind: model.FieldKindEmail},
			want:  validation.Result{Field: "email", Validity: model.InvalidRequired, MessageKey: validation.MessageRequired},
		},
		{
			name:  "email bad shape",
			field: model.FormField{Name: "email", Value: "bad-email", Required: true, Kind: model.FieldKindEmail},
			want:  validation.Result{Field: "email", Validity: model.InvalidFormat, MessageKey: validation.MessageEmail},
		},
		{
			name:  "email valid with surrounding spaces",
			field: model.FormField{Name: "email", Value: "  a@b.co ", Required: true, Kind: model.FieldKindEmail},
			want:  validation.Result{Field: "email", Validity: model.Valid},
		},
		{
			name:  "optional phone empty",
			field: model.FormField{Name: "phone", Kind: model.FieldKindTel},
			want:  validation.Result{Field: "phone", Validity: model.Valid},
		},
		{
			name:  "phone with letters",
			field: model.FormField{Name: "phone", Value: "010-CALL-ME", Kind: model.FieldKindTel},
			want:  validation.Result{Field: "phone", Validity: model.InvalidFormat, MessageKey: validation.MessagePhone},
		},
		{
			name:  "phone international",
			field: model.FormField{Name: "phone", Value: "+82 (10) 1234-5678", Kind: model.FieldKindTel},
			want:  validation.Result{Field: "phone", Validity: model.Valid},
		},
		{
			name:  "required byte order mark only",
			field: model.FormField{Name: "company", Value: "\ufeff", Required: true, Kind: model.FieldKindText},
			want:  validation.Result{Field: "company", Validity: model.InvalidRequired, MessageKey: validation.MessageRequired},
		},
		{
			name:  "email with trailing byte order mark",
			field: model.FormField{Name: "email", Value: "a@b.co\ufeff", Required: true, Kind: model.FieldKindEmail},
			want:  validation.Result{Field: "email", Validity: model.Valid},
		},
		{
			name:  "phone with trailing next line",
			field: model.FormField{Name: "phone", Value: "010\u0085", Kind: model.FieldKindTel},
			want:  validation.Result{Field: "phone", Validity: model.InvalidFormat, MessageKey: validation.MessagePhone},
		},
		{
			name:  "optional text area",
			field: model.FormField{Name: "message", Kind: model.FieldKindTextArea},
			want:  validation.Result{Field: "message", Validity: model.Valid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.Validate(tt.field)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	cases := map[string]string{
		"  a\t":               "a",
		"\u00a0\u3000a\u2005": "a",
		"\ufeffa\ufeff":       "a",
		"\u0085a\u0085":       "\u0085a\u0085",
		"a b":                 "a b",
	}
	for in, want := range cases {
		if got := validation.Trim(in); got != want {
			t.Fatalf("Trim(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":             true,
		"first.last@corp.kr": true,
		"a@b":                false,
		"@b.co":              false,
		"a@.co":              false,
		"a b@c.de":           false,
		"a@b@c.de":           false,
		"a@b.c d":            false,
	}
	for input, want := range cases {
		if got := validation.IsEmail(input); got != want {
			t.Errorf("IsEmail(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidateAllKeepsInputOrder(t *testing.T) {
	fields := []model.FormField{
		{Name: "company", Required: true, Kind: model.FieldKindText},
		{Name: "email", Value: "nope", Required: true, Kind: model.FieldKindEmail},
		{Name: "phone", Value: "010", Kind: model.FieldKindTel},
	}

	got := validation.ValidateAll(fields)
	names := make([]string, 0, len(got))
	for _, res := range got {
		names = append(names, res.Field)
	}
	if diff := cmp.Diff([]string{"company", "email"}, names); diff != "" {
		t.Fatalf("failure order mismatch (-want +got):\n%s", diff)
	}
}

func TestFormErrorUnwrap(t *testing.T) {
	err := error(&validation.FormError{Fields: []*validation.ValidationError{
		{Field: "email", Kind: model.InvalidFormat, Message: "bad"},
	}})

	var fieldErr *validation.ValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected errors.As to find the field error")
	}
	if fieldErr.Field != "email" {
		t.Fatalf("unexpected field %q", fieldErr.Field)
	}
	if got := err.Error(); got != "validation: form invalid: email" {
		t.Fatalf("unexpected message %q", got)
	}
}
