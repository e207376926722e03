// Package render holds the pieces shared by every contact form front end:
// the message catalog and Translator contract, the mapping of validation and
// endpoint errors onto fields, hidden field helpers and RenderOptions.
package render
