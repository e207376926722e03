// Package controller implements the contact form controller: modal
// visibility, field-level validation and the single-flight submission
// lifecycle.
//
// The controller never touches a rendering technology directly. It is
// constructed with element handles (dialog, fields, submit button, notices)
// and mutates them in response to operations such as OpenModal, ValidateField
// or Submit. Work that completes asynchronously (the transport send and the
// delayed close after success) re-enters the controller through a Loop, so
// views that own a UI event loop can run that work on their own thread.
package controller
