package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestDefaultCatalogLocales(t *testing.T) {
	catalog := render.DefaultCatalog()

	ko, err := catalog.Translate("ko", validation.MessageRequired)
	if err != nil {
		t.Fatalf("translate ko: %v", err)
	}
	if ko != "이 필드는 필수입니다." {
		t.Fatalf("unexpected korean message %q", ko)
	}

	en, err := catalog.Translate("en-US", validation.MessageEmail)
	if err != nil {
		t.Fatalf("translate en-US: %v", err)
	}
	if en != "Please enter a valid email address." {
		t.Fatalf("unexpected english message %q", en)
	}

	fallback, err := catalog.Translate("fr", render.MessageSubmitBusy)
	if err != nil {
		t.Fatalf("translate fallback: %v", err)
	}
	if fallback != "전송 중..." {
		t.Fatalf("expected default locale fallback, got %q", fallback)
	}
}

func TestCatalogMissingKey(t *testing.T) {
	catalog := render.NewCatalog("en")
	catalog.Add("en", map[string]string{"greeting": "hello %s"})

	got, err := catalog.Translate("en", "greeting", "acme")
	if err != nil || got != "hello acme" {
		t.Fatalf("unexpected translation %q (%v)", got, err)
	}

	if _, err := catalog.Translate("en", "missing"); !errors.Is(err, render.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestLocalizerFallsBackToKey(t *testing.T) {
	l := render.Localizer{Locale: "en"}
	if got := l.Text("contact.unknown"); got != "contact.unknown" {
		t.Fatalf("expected key fallback, got %q", got)
	}

	var reported error
	l = render.Localizer{
		Locale:     "en",
		Translator: render.NewCatalog("en"),
		OnMissing: func(_ string, key string, _ []any, err error) string {
			reported = err
			return "[" + key + "]"
		},
	}
	if got := l.Text("nope"); got != "[nope]" {
		t.Fatalf("unexpected missing handler output %q", got)
	}
	if !errors.Is(reported, render.ErrMissingTranslation) {
		t.Fatalf("expected missing translation error, got %v", reported)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs("en", render.DefaultCatalog(), render.TemplateI18nConfig{})

	translate, ok := funcs["translate"].(func(string) string)
	if !ok {
		t.Fatalf("translate helper missing or wrong type: %T", funcs["translate"])
	}
	if got := translate(render.MessageSubmitBusy); got != "Sending..." {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := translate("  "); got != "" {
		t.Fatalf("expected empty key to render empty, got %q", got)
	}

	locale, ok := funcs["current_locale"].(func() string)
	if !ok || locale() != "en" {
		t.Fatalf("current_locale helper mismatch")
	}
}
