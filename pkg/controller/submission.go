package controller

import (
	"context"
	"sync"

	"github.com/goliatone/go-contactform/pkg/transport"
)

// Submission is the single resolution point of one submit attempt.
type Submission struct {
	payload transport.Payload
	done    chan struct{}
	once    sync.Once
	err     error
}

func newSubmission(payload transport.Payload) *Submission {
	return &Submission{payload: payload, done: make(chan struct{})}
}

// Payload returns a copy of the submitted values.
func (s *Submission) Payload() transport.Payload {
	return s.payload.Clone()
}

// Done is closed once the submission resolved.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Err returns the outcome: nil on success, a *transport.SubmissionError on
// failure, or ErrSubmissionPending before resolution.
func (s *Submission) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return ErrSubmissionPending
	}
}

// Wait blocks until the submission resolves or ctx ends.
func (s *Submission) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Submission) resolve(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}
