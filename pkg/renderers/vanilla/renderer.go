package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	"github.com/goliatone/go-contactform/pkg/render/template/pongo"
)

const (
	templateModal = "templates/modal.tpl"
	templatePage  = "templates/page.tpl"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.Renderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	assetBase        string
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves name and variant through selector when the
// render options carry no selection of their own.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithAssetBase sets the URL prefix the embedded stylesheet is served from.
func WithAssetBase(base string) Option {
	return func(cfg *config) {
		cfg.assetBase = base
	}
}

// WithDescriptionPolicy replaces the sanitizer applied to the definition's
// rich description.
func WithDescriptionPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer renders the contact modal as HTML.
type Renderer struct {
	templates    rendertemplate.Renderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	assetBase    string
	policy       *bluemonday.Policy
}

// New constructs the vanilla renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetBase: "/assets"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = descriptionPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		selector:     cfg.selector,
		themeName:    cfg.themeName,
		themeVariant: cfg.themeVariant,
		assetBase:    cfg.assetBase,
		policy:       cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render returns the modal markup for snap.
func (r *Renderer) Render(ctx context.Context, snap elements.Snapshot, opts render.RenderOptions) ([]byte, error) {
	return r.render(ctx, templateModal, snap, opts)
}

// RenderPage returns a minimal landing page embedding the modal and its
// call to action buttons.
func (r *Renderer) RenderPage(ctx context.Context, snap elements.Snapshot, opts render.RenderOptions) ([]byte, error) {
	return r.render(ctx, templatePage, snap, opts)
}

func (r *Renderer) render(ctx context.Context, name string, snap elements.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	selection, err := r.resolveTheme(opts.Theme)
	if err != nil {
		return nil, err
	}

	data := r.viewData(snap, opts, selection)
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) resolveTheme(selection *theme.Selection) (*theme.Selection, error) {
	if selection != nil || r.selector == nil {
		return selection, nil
	}
	selected, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
	}
	return selected, nil
}
