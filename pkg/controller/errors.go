package controller

import "errors"

var (
	// ErrSubmissionInFlight is returned by Submit while a previous submission
	// has not completed. The call has no effect.
	ErrSubmissionInFlight = errors.New("controller: submission in flight")
	// ErrUnknownField is returned for field names outside the definition.
	ErrUnknownField = errors.New("controller: unknown field")
	// ErrMissingElement is returned by New when a required handle is nil.
	ErrMissingElement = errors.New("controller: missing element")
	// ErrSubmissionPending is returned by Submission.Err before resolution.
	ErrSubmissionPending = errors.New("controller: submission pending")
)
