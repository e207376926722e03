// Package tui drives a contact form controller from an interactive terminal
// prompt. Each field is asked in order; leaving a prompt validates the field
// the way blurring an input does, and invalid answers are asked again.
package tui
