package pongo_test

import (
	"bytes"
	"os"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-contactform/pkg/render/template/pongo"
)

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()
	engine, err := pongo.New(pongo.WithFS(os.DirFS("testdata")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestRenderTemplate_WritesToOutputs(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{
		"greeting":   func(name string) string { return "Hello, " + name },
		"name":       "Ada",
		"field_name": "Company Name",
	}

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", data, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<p>Hello, Ada contact-company-name</p>\n"
	if got != want || buf.String() != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q (writer %q)", want, got, buf.String())
	}
}

func TestRenderTemplate_StructDataUsesJSONNames(t *testing.T) {
	engine, err := pongo.New(pongo.WithFS(fstest.MapFS{
		"id.tpl": {Data: []byte(`{{ field_name|dom_id }}`)},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	data := struct {
		FieldName string `json:"field_name"`
	}{FieldName: "  Phone / Mobile "}

	got, err := engine.RenderTemplate("id.tpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "phone-mobile" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestRenderTemplate_CachesParsedTemplates(t *testing.T) {
	files := fstest.MapFS{"page.tpl": {Data: []byte("v1")}}
	engine, err := pongo.New(pongo.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if got, err := engine.RenderTemplate("page", nil); err != nil || got != "v1" {
		t.Fatalf("first render = %q, %v", got, err)
	}
	files["page.tpl"] = &fstest.MapFile{Data: []byte("v2")}
	if got, err := engine.RenderTemplate("page", nil); err != nil || got != "v1" {
		t.Fatalf("cached render = %q, %v", got, err)
	}
}

func TestRenderTemplate_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}
