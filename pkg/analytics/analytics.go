// Package analytics records lightweight page interaction events.
package analytics

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Event names emitted by the landing page.
const (
	EventFormSubmission = "form_submission"
	EventButtonClick    = "button_click"
	EventScrollDepth    = "scroll_depth"
)

// Event is a named analytics record with free-form properties.
type Event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

// FormSubmission builds the event emitted on every submit attempt.
func FormSubmission(formType string) Event {
	return Event{Name: EventFormSubmission, Properties: map[string]any{"form_type": formType}}
}

// ButtonClick builds the event emitted when a page button is clicked.
// An empty section is reported as "unknown".
func ButtonClick(text, section string) Event {
	section = strings.TrimSpace(section)
	if section == "" {
		section = "unknown"
	}
	return Event{Name: EventButtonClick, Properties: map[string]any{
		"button_text": strings.TrimSpace(text),
		"section":     section,
	}}
}

// Tracker records events. Implementations must not block the caller for long
// and never fail the operation that produced the event.
type Tracker interface {
	Track(ctx context.Context, event Event)
}

// TrackerFunc adapts a function into a Tracker.
type TrackerFunc func(ctx context.Context, event Event)

// Track calls the underlying function.
func (fn TrackerFunc) Track(ctx context.Context, event Event) {
	fn(ctx, event)
}

// Nop discards events.
type Nop struct{}

// Track implements Tracker.
func (Nop) Track(context.Context, Event) {}

// Log writes events as structured log records.
type Log struct {
	logger *zap.Logger
}

// NewLog constructs a Log tracker. A nil logger discards events.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Track implements Tracker.
func (l *Log) Track(_ context.Context, event Event) {
	l.logger.Info("analytics event", zap.String("event", event.Name), zap.Any("properties", event.Properties))
}

// Multi fans an event out to every tracker.
type Multi []Tracker

// Track implements Tracker.
func (m Multi) Track(ctx context.Context, event Event) {
	for _, tracker := range m {
		if tracker != nil {
			tracker.Track(ctx, event)
		}
	}
}

// Recorder keeps events in memory. It is used by tests and by callers that
// batch events before forwarding them.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Track implements Tracker.
func (r *Recorder) Track(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
