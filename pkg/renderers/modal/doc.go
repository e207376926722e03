// Package modal is a full-screen terminal rendition of the contact modal
// built on bubbletea. Submission completions re-enter the program through a
// controller.ChanLoop so every element mutation happens inside Update.
package modal
