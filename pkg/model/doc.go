// Package model defines the typed contact form model shared by the controller,
// the validation rules, the definition loaders and every renderer. A
// FormDefinition describes the fields a landing page exposes; FormField pairs
// a field's definition with the live value read from its element handle.
// Validity is always derived from a FormField and never stored on it.
package model
