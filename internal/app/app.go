// Package app assembles form definitions, transports, trackers and renderers
// from configuration for the contactform commands.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/analytics"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/transport"
)

// LoadDefinition reads the form definition named by cfg. A definition file
// wins over an OpenAPI document; with neither, the built-in consultation
// form is used.
func LoadDefinition(ctx context.Context, cfg config.FormConfig) (model.FormDefinition, error) {
	switch {
	case strings.TrimSpace(cfg.DefinitionPath) != "":
		dir, name := filepath.Split(filepath.Clean(cfg.DefinitionPath))
		if dir == "" {
			dir = "."
		}
		return formdef.LoadFS(os.DirFS(dir), name)
	case strings.TrimSpace(cfg.OpenAPIPath) != "":
		raw, err := os.ReadFile(cfg.OpenAPIPath)
		if err != nil {
			return model.FormDefinition{}, fmt.Errorf("app: read openapi document: %w", err)
		}
		return formdef.FromOpenAPI(ctx, raw, cfg.OpenAPIOperation)
	default:
		return formdef.Default(), nil
	}
}

// NewTransport builds the transport selected by cfg.Kind.
func NewTransport(cfg config.TransportConfig, def model.FormDefinition, logger *zap.Logger) (transport.Transport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Kind {
	case "", config.TransportSimulated:
		return transport.NewSimulated(
			transport.WithLatency(cfg.SimulatedLatency),
			transport.WithSimulatedLogger(logger),
		), nil
	case config.TransportHTTP:
		options := []transport.HTTPOption{
			transport.WithEncoding(transport.Encoding(cfg.HTTPEncoding)),
			transport.WithHTTPLogger(logger),
		}
		if cfg.HTTPAPIKey != "" {
			options = append(options, transport.WithHeader("Authorization", "Bearer "+cfg.HTTPAPIKey))
		}
		httpTransport, err := transport.NewHTTP(cfg.HTTPEndpoint, options...)
		if err != nil {
			return nil, err
		}
		return httpTransport, nil
	case config.TransportMailgun:
		order := make([]string, 0, len(def.Fields))
		labels := make(map[string]string, len(def.Fields))
		for _, field := range def.Fields {
			order = append(order, field.Name)
			labels[field.Name] = field.Label
		}
		email, err := transport.NewMailgun(transport.MailgunConfig{
			Domain:    cfg.MailgunDomain,
			APIKey:    cfg.MailgunAPIKey,
			FromEmail: cfg.MailgunFrom,
			FromName:  cfg.MailgunFromName,
			To:        cfg.MailgunTo,
			Subject:   cfg.MailgunSubject,
			Timeout:   cfg.MailgunTimeout,
		}, transport.WithFieldLabels(order, labels), transport.WithEmailLogger(logger))
		if err != nil {
			return nil, err
		}
		return email, nil
	default:
		return nil, fmt.Errorf("app: unknown transport %q", cfg.Kind)
	}
}

// NewTracker logs every event and, when reg is non-nil, counts it.
func NewTracker(logger *zap.Logger, reg prometheus.Registerer) (analytics.Tracker, error) {
	trackers := analytics.Multi{analytics.NewLog(logger)}
	if reg != nil {
		counter, err := analytics.NewPrometheus(reg)
		if err != nil {
			return nil, err
		}
		trackers = append(trackers, counter)
	}
	return trackers, nil
}

// NewRenderer builds the HTML renderer with the configured theme.
func NewRenderer(cfg config.FormConfig) (*vanilla.Renderer, error) {
	selector, err := vanilla.NewManifestSelector(vanilla.DefaultManifest())
	if err != nil {
		return nil, err
	}
	if _, err := selector.Select(cfg.Theme, cfg.ThemeVariant); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return vanilla.New(vanilla.WithThemeSelector(selector, cfg.Theme, cfg.ThemeVariant))
}
