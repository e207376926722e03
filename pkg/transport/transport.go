package transport

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Payload maps field names to submitted values.
type Payload map[string]string

// Keys returns the payload field names in sorted order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Transport performs the actual submission of a form payload.
type Transport interface {
	Send(ctx context.Context, payload Payload) error
}

// Func adapts a function into a Transport.
type Func func(ctx context.Context, payload Payload) error

// Send calls the underlying function.
func (fn Func) Send(ctx context.Context, payload Payload) error {
	return fn(ctx, payload)
}

// ErrNotConfigured is returned when a transport lacks required settings.
var ErrNotConfigured = errors.New("transport: not configured")

// SubmissionError is the recoverable, form-level failure of a send. Reason is
// safe to log; FieldErrors carries any per-field feedback returned by the
// destination.
type SubmissionError struct {
	Transport   string
	Reason      string
	StatusCode  int
	FieldErrors map[string][]string
	Err         error
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("transport %s: %s", e.Transport, e.Reason)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// AsSubmissionError normalises any send error into a *SubmissionError tagged
// with the transport name.
func AsSubmissionError(name string, err error) *SubmissionError {
	if err == nil {
		return nil
	}
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		return subErr
	}
	reason := "send failed"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timed out"
	case errors.Is(err, context.Canceled):
		reason = "canceled"
	}
	return &SubmissionError{Transport: name, Reason: reason, Err: err}
}
