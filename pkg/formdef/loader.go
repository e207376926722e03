package formdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/model"
)

// LoadYAML parses a YAML (or JSON, which YAML accepts) definition.
func LoadYAML(data []byte) (model.FormDefinition, error) {
	var def model.FormDefinition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return model.FormDefinition{}, fmt.Errorf("formdef: decode yaml: %w", err)
	}
	if err := Validate(&def); err != nil {
		return model.FormDefinition{}, err
	}
	return def, nil
}

// LoadJSON parses a JSON definition, rejecting unknown keys.
func LoadJSON(data []byte) (model.FormDefinition, error) {
	var def model.FormDefinition
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&def); err != nil {
		return model.FormDefinition{}, fmt.Errorf("formdef: decode json: %w", err)
	}
	if err := Validate(&def); err != nil {
		return model.FormDefinition{}, err
	}
	return def, nil
}

// LoadFS reads path from fsys, picking the decoder from the extension.
func LoadFS(fsys fs.FS, path string) (model.FormDefinition, error) {
	if fsys == nil {
		return model.FormDefinition{}, fmt.Errorf("formdef: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	var def model.FormDefinition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		def, err = LoadJSON(data)
	case ".yaml", ".yml":
		def, err = LoadYAML(data)
	default:
		return model.FormDefinition{}, fmt.Errorf("formdef: unsupported file %s", path)
	}
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
