package analytics

import (
	"context"
	"math"
	"sync"
)

// ScrollDepth reports 25/50/75/100 percent scroll milestones once per page
// view. Only new maxima that land exactly on a milestone are reported, the
// same way the landing page sampled its debounced scroll position.
type ScrollDepth struct {
	mu      sync.Mutex
	tracker Tracker
	max     int
}

// NewScrollDepth constructs a milestone tracker forwarding to tracker.
func NewScrollDepth(tracker Tracker) *ScrollDepth {
	if tracker == nil {
		tracker = Nop{}
	}
	return &ScrollDepth{tracker: tracker}
}

// Observe records a scroll position and reports whether an event was sent.
func (s *ScrollDepth) Observe(ctx context.Context, scrollY, scrollHeight, viewportHeight float64) bool {
	scrollable := scrollHeight - viewportHeight
	if scrollable <= 0 {
		return false
	}
	percent := int(math.Round(scrollY / scrollable * 100))
	return s.ObservePercent(ctx, percent)
}

// ObservePercent records an already computed percentage.
func (s *ScrollDepth) ObservePercent(ctx context.Context, percent int) bool {
	s.mu.Lock()
	if percent <= s.max {
		s.mu.Unlock()
		return false
	}
	s.max = percent
	milestone := percent%25 == 0
	s.mu.Unlock()

	if !milestone {
		return false
	}
	s.tracker.Track(ctx, Event{Name: EventScrollDepth, Properties: map[string]any{"depth": percent}})
	return true
}

// Max returns the deepest position observed so far.
func (s *ScrollDepth) Max() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.max
}
