package analytics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus counts events by name and form type.
type Prometheus struct {
	events *prometheus.CounterVec
}

// NewPrometheus registers the event counter with reg. A nil registerer uses
// prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contactform",
		Name:      "events_total",
		Help:      "Analytics events recorded by the contact form.",
	}, []string{"event", "form_type"})

	if err := reg.Register(events); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("analytics: unexpected collector type %T", already.ExistingCollector)
			}
			events = existing
		} else {
			return nil, fmt.Errorf("analytics: register counter: %w", err)
		}
	}
	return &Prometheus{events: events}, nil
}

// Track implements Tracker.
func (p *Prometheus) Track(_ context.Context, event Event) {
	formType, _ := event.Properties["form_type"].(string)
	p.events.WithLabelValues(event.Name, formType).Inc()
}

// Counter exposes the underlying vector, mainly for tests.
func (p *Prometheus) Counter() *prometheus.CounterVec {
	return p.events
}
