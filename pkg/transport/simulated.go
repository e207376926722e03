package transport

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSimulatedLatency matches the delay of the landing page's stand-in
// submission.
const DefaultSimulatedLatency = 2 * time.Second

// Simulated stands in for a real endpoint: it waits a fixed latency, logs the
// payload as a structured record and succeeds.
type Simulated struct {
	latency time.Duration
	logger  *zap.Logger
	after   func(time.Duration) <-chan time.Time
}

// SimulatedOption configures a Simulated transport.
type SimulatedOption func(*Simulated)

// WithLatency overrides the fixed latency. Negative values are ignored.
func WithLatency(d time.Duration) SimulatedOption {
	return func(s *Simulated) {
		if d >= 0 {
			s.latency = d
		}
	}
}

// WithSimulatedLogger sets the logger receiving the payload record.
func WithSimulatedLogger(logger *zap.Logger) SimulatedOption {
	return func(s *Simulated) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimer replaces time.After, letting tests drive the latency.
func WithTimer(after func(time.Duration) <-chan time.Time) SimulatedOption {
	return func(s *Simulated) {
		if after != nil {
			s.after = after
		}
	}
}

// NewSimulated constructs a Simulated transport.
func NewSimulated(options ...SimulatedOption) *Simulated {
	s := &Simulated{
		latency: DefaultSimulatedLatency,
		logger:  zap.NewNop(),
		after:   time.After,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Send waits for the latency then logs the payload.
func (s *Simulated) Send(ctx context.Context, payload Payload) error {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return AsSubmissionError("simulated", ctx.Err())
		case <-s.after(s.latency):
		}
	} else if err := ctx.Err(); err != nil {
		return AsSubmissionError("simulated", err)
	}

	fields := make([]zap.Field, 0, len(payload))
	for _, key := range payload.Keys() {
		fields = append(fields, zap.String(key, payload[key]))
	}
	s.logger.Info("form submission data", zap.Dict("payload", fields...))
	return nil
}
