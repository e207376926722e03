package validation

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Message keys resolved by a render.Translator.
const (
	MessageRequired = "contact.validation.required"
	MessageEmail    = "contact.validation.email"
	MessagePhone    = "contact.validation.phone"
)

// whitespace mirrors the browser regex \s class so the rules accept exactly
// what the landing page accepted.
const whitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\-+` + whitespace + `()]+$`)
)

// Trim strips the leading and trailing runes of the whitespace class, matching
// the browser's String.prototype.trim rather than unicode.IsSpace.
func Trim(value string) string {
	return strings.TrimFunc(value, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// Result is the outcome of validating one field.
type Result struct {
	Field      string
	Validity   model.Validity
	MessageKey string
}

// OK reports whether the field passed every rule.
func (r Result) OK() bool {
	return r.Validity == model.Valid
}

// Validate applies the field rules in order. The first failing rule wins.
func Validate(field model.FormField) Result {
	value := Trim(field.Value)
	result := Result{Field: field.Name, Validity: model.Valid}

	switch {
	case field.Required && value == "":
		result.Validity = model.InvalidRequired
		result.MessageKey = MessageRequired
	case field.Kind == model.FieldKindEmail && value != "" && !IsEmail(value):
		result.Validity = model.InvalidFormat
		result.MessageKey = MessageEmail
	case field.Kind == model.FieldKindTel && value != "" && !IsPhone(value):
		result.Validity = model.InvalidFormat
		result.MessageKey = MessagePhone
	}

	return result
}

// IsEmail reports whether value has the local@domain.tld shape.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPhone reports whether value only holds phone number characters.
func IsPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// ValidateAll validates every field and returns the failures in input order.
func ValidateAll(fields []model.FormField) []Result {
	var failures []Result
	for _, field := range fields {
		if res := Validate(field); !res.OK() {
			failures = append(failures, res)
		}
	}
	return failures
}
