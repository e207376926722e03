package vanilla

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAssetKey names the theme asset that replaces the embedded
// stylesheet.
const StylesheetAssetKey = "contactform.stylesheet"

// ErrThemeNotFound is returned by ManifestSelector for unknown themes.
var ErrThemeNotFound = errors.New("vanilla renderer: theme not found")

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

// ManifestSelector resolves selections from registered manifests. The first
// registered manifest is the default theme.
type ManifestSelector struct {
	mu        sync.RWMutex
	registry  manifestRegistry
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests with a go-theme registry and
// keeps them for selection.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds manifest.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("vanilla renderer: theme manifest needs a name")
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("vanilla renderer: register theme %q: %w", manifest.Name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.Name] = manifest
	if s.fallback == "" {
		s.fallback = manifest.Name
	}
	return nil
}

// Select returns the manifest registered as name, or the default theme when
// name is empty. Unknown variants select the base theme.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(name) == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// DefaultManifest is the landing page palette.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "landing",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":    "#6c5ce7",
			"color-primary-fg": "#ffffff",
			"color-error":      "#e74c3c",
			"color-success":    "#27ae60",
			"color-surface":    "#ffffff",
			"radius":           "12px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-surface": "#1e1e2e",
				},
			},
		},
	}
}

type themeView struct {
	Name       string
	Variant    string
	CSSVars    string
	Stylesheet string
}

func buildThemeView(selection *theme.Selection) themeView {
	if selection == nil || selection.Manifest == nil {
		return themeView{}
	}
	manifest := selection.Manifest

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	assets := manifest.Assets
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		if file, ok := variant.Assets.Files[StylesheetAssetKey]; ok {
			prefix := variant.Assets.Prefix
			if prefix == "" {
				prefix = assets.Prefix
			}
			assets = theme.Assets{Prefix: prefix, Files: map[string]string{StylesheetAssetKey: file}}
		}
	}

	view := themeView{
		Name:    selection.Theme,
		Variant: selection.Variant,
		CSSVars: cssVarsStyle(tokens),
	}
	if file, ok := assets.Files[StylesheetAssetKey]; ok && file != "" {
		view.Stylesheet = assetURL(assets.Prefix, file)
	}
	return view
}

func assetURL(prefix, file string) string {
	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") || strings.HasPrefix(file, "/") {
		return file
	}
	if prefix == "" {
		return file
	}
	return strings.TrimSuffix(prefix, "/") + "/" + path.Clean(file)
}

func cssVarsStyle(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".contact-modal {")
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(tokens[key])
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}
