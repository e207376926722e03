package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/analytics"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/transport"
)

// DefaultCloseDelay is how long the success notice stays visible before the
// modal closes itself.
const DefaultCloseDelay = 2 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithTransport sets the submission transport. The default is a simulated
// transport that logs the payload.
func WithTransport(t transport.Transport) Option {
	return func(c *Controller) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithTracker sets the analytics tracker.
func WithTracker(t analytics.Tracker) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithTranslator sets the translator and locale used for messages.
func WithTranslator(t render.Translator, locale string) Option {
	return func(c *Controller) {
		if t != nil {
			c.localizer.Translator = t
		}
		if locale != "" {
			c.localizer.Locale = locale
		}
	}
}

// WithClock replaces the clock driving the delayed close.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLoop sets the loop receiving background completions.
func WithLoop(loop Loop) Option {
	return func(c *Controller) {
		if loop != nil {
			c.loop = loop
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCloseDelay overrides DefaultCloseDelay. A negative delay keeps the
// modal open after success.
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.closeDelay = d
	}
}

// WithSendTimeout bounds each transport call. Zero leaves the caller's
// context in charge.
func WithSendTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.sendTimeout = d
		}
	}
}
