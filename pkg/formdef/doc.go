// Package formdef loads contact form definitions from YAML or JSON documents
// and derives them from OpenAPI request bodies.
package formdef
