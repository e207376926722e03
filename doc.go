// Package contactform is the top-level entry point of the landing page
// contact form. It re-exports the pieces most callers need: the default
// definition, a headless controller constructor and HTML generation.
//
// The building blocks live under pkg/: model and validation describe the
// fields, controller owns the modal and submission lifecycle, elements is the
// in-memory element set, transport and analytics are the pluggable outputs,
// and renderers/ holds the HTML, prompt and terminal modal front ends.
package contactform
