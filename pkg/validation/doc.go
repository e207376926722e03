// Package validation implements the field rules of the contact form. Rules are
// applied in order and the first failure wins: required fields must carry a
// non-blank value, email fields must look like local@domain.tld and telephone
// fields may only contain digits, "+", "-", whitespace and parentheses. Values
// are trimmed before every rule runs.
package validation
