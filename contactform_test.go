package contactform

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/transport"
)

func TestNewHeadlessSubmits(t *testing.T) {
	var got Payload
	form, ctrl, err := NewHeadless(DefaultDefinition(),
		controller.WithTransport(transport.Func(func(_ context.Context, p transport.Payload) error {
			got = p.Clone()
			return nil
		})),
		controller.WithCloseDelay(-1),
	)
	if err != nil {
		t.Fatalf("NewHeadless: %v", err)
	}
	ctrl.OpenModal()
	form.Fill(map[string]string{"company": "Acme", "email": "kim@example.com"})

	sub, err := ctrl.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := sub.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if ctrl.Status() != model.StatusSucceeded {
		t.Fatalf("status = %q", ctrl.Status())
	}
	if got["company"] != "Acme" || got["email"] != "kim@example.com" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestNewHeadlessRejectsInvalidDefinition(t *testing.T) {
	_, _, err := NewHeadless(FormDefinition{ID: "empty"})
	if !errors.Is(err, formdef.ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), DefaultDefinition(), true, RenderOptions{Locale: "en", Translator: render.DefaultCatalog()})
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{"<!DOCTYPE html>", "contact-modal is-open", `class="modal-open"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, html)
		}
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/modal.tpl"); err != nil {
		t.Fatalf("modal template: %v", err)
	}
	if _, err := fs.Stat(AssetsFS(), "contactform.css"); err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
	if _, err := fs.Stat(AssetsFS(), "contactform.js"); err != nil {
		t.Fatalf("page runtime: %v", err)
	}
}
