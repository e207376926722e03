// Package elements provides in-memory element handles for the contact form
// controller. A Form built from a definition stands in for the page DOM: the
// controller mutates it through the controller interfaces and renderers read
// it back through Snapshot.
package elements
