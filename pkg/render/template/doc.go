// Package template defines the template engine contract used by renderers.
// The pongo subpackage provides the default implementation.
package template
