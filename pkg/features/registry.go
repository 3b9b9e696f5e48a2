package features

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrSchemaUnknown = errors.New("unknown schema")

type Registry struct {
	schemas map[string]Schema
}

type registryFile struct {
	Schemas []Schema `yaml:"schemas"`
}

// LoadRegistry returns the built-in schemas, optionally overridden or
// extended by a YAML file. A file entry with a built-in name replaces it.
func LoadRegistry(path string) (*Registry, error) {
	reg := &Registry{schemas: make(map[string]Schema)}
	for _, s := range Builtins() {
		reg.schemas[s.Name] = s
	}

	if path == "" {
		return reg, nil
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var file registryFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}

	for _, s := range file.Schemas {
		if err := validateSchema(s); err != nil {
			return nil, err
		}
		reg.schemas[s.Name] = s
	}

	return reg, nil
}

func (r *Registry) Get(name string) (Schema, error) {
	schema, ok := r.schemas[name]
	if !ok {
		return Schema{}, fmt.Errorf("schema '%s': %w", name, ErrSchemaUnknown)
	}
	return schema, nil
}

func (r *Registry) List() []Schema {
	out := make([]Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func validateSchema(s Schema) error {
	if s.Name == "" {
		return errors.New("schema entry missing name")
	}
	if len(s.Features) == 0 {
		return fmt.Errorf("schema %s declares no features", s.Name)
	}
	if s.ArtifactBase == "" {
		return fmt.Errorf("schema %s missing artifact_base", s.Name)
	}
	switch s.Policy {
	case "binary", "ternary":
	default:
		return fmt.Errorf("schema %s has unknown policy '%s'", s.Name, s.Policy)
	}
	seen := make(map[string]struct{}, len(s.Features))
	for _, f := range s.Features {
		if _, dup := seen[f]; dup {
			return fmt.Errorf("schema %s repeats feature %s", s.Name, f)
		}
		seen[f] = struct{}{}
	}
	return nil
}
