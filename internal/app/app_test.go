package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/analytics"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/testsupport"
	"github.com/goliatone/go-contactform/pkg/transport"
)

func TestLoadDefinitionDefault(t *testing.T) {
	def, err := LoadDefinition(context.Background(), config.FormConfig{})
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if diff := cmp.Diff(formdef.Default(), def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefinitionFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	doc := "id: demo\ntitle: Demo\nfields:\n  - name: email\n    kind: email\n    required: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	def, err := LoadDefinition(context.Background(), config.FormConfig{DefinitionPath: path})
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	want := []model.FieldSpec{{Name: "email", Label: "email", Kind: model.FieldKindEmail, Required: true}}
	if diff := cmp.Diff(want, def.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefinitionFromOpenAPIMatchesGolden(t *testing.T) {
	def, err := LoadDefinition(context.Background(), config.FormConfig{
		OpenAPIPath:      filepath.Join("..", "..", "pkg", "formdef", "testdata", "openapi.yaml"),
		OpenAPIOperation: "createConsultation",
	})
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}

	goldenPath := filepath.Join("testdata", "consultation.golden.yaml")
	data, err := yaml.Marshal(def)
	if err != nil {
		t.Fatalf("encode definition: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, goldenPath, data) {
		return
	}
	want := testsupport.LoadDefinition(t, goldenPath)
	if diff := testsupport.CompareGolden(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefinitionMissingFile(t *testing.T) {
	_, err := LoadDefinition(context.Background(), config.FormConfig{OpenAPIPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewTransport(t *testing.T) {
	def := formdef.Default()

	simulated, err := NewTransport(config.TransportConfig{Kind: config.TransportSimulated}, def, nil)
	if err != nil {
		t.Fatalf("simulated: %v", err)
	}
	if _, ok := simulated.(*transport.Simulated); !ok {
		t.Fatalf("simulated transport type = %T", simulated)
	}

	httpTransport, err := NewTransport(config.TransportConfig{Kind: config.TransportHTTP, HTTPEndpoint: "https://api.example.com/leads"}, def, nil)
	if err != nil {
		t.Fatalf("http: %v", err)
	}
	if _, ok := httpTransport.(*transport.HTTP); !ok {
		t.Fatalf("http transport type = %T", httpTransport)
	}

	email, err := NewTransport(config.TransportConfig{
		Kind:          config.TransportMailgun,
		MailgunDomain: "mg.example.com",
		MailgunAPIKey: "key",
		MailgunFrom:   "form@example.com",
		MailgunTo:     []string{"sales@example.com"},
	}, def, nil)
	if err != nil {
		t.Fatalf("mailgun: %v", err)
	}
	msg := email.(*transport.Email).Compose(transport.Payload{"company": "Acme", "email": "kim@example.com"})
	if diff := cmp.Diff([]string{"sales@example.com"}, msg.To); diff != "" {
		t.Fatalf("recipients mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewTransport(config.TransportConfig{Kind: config.TransportHTTP}, def, nil); !errors.Is(err, transport.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewTransport(config.TransportConfig{Kind: "pigeon"}, def, nil); err == nil {
		t.Fatal("expected unknown transport error")
	}
}

func TestNewTrackerCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	tracker, err := NewTracker(nil, reg)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	tracker.Track(context.Background(), analytics.FormSubmission("contact_consultation"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 1 || families[0].GetName() != "contactform_events_total" {
		t.Fatalf("unexpected metric families: %v", families)
	}
	if got := families[0].GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("counter = %v, want 1", got)
	}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer(config.FormConfig{Theme: "landing", ThemeVariant: "dark"})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	form := elements.NewForm(formdef.Default())
	out, err := r.Render(context.Background(), form.Snapshot(), render.RenderOptions{Locale: "en", Translator: render.DefaultCatalog()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html := string(out); !containsAll(html, `data-theme="landing"`, `data-theme-variant="dark"`) {
		t.Fatalf("expected theme attributes:\n%s", html)
	}

	if _, err := NewRenderer(config.FormConfig{Theme: "unknown"}); err == nil {
		t.Fatal("expected unknown theme error")
	}
}

func containsAll(s string, fragments ...string) bool {
	for _, fragment := range fragments {
		if !strings.Contains(s, fragment) {
			return false
		}
	}
	return true
}
