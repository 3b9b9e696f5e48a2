package features

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.List()) != 3 {
		t.Fatalf("expected 3 builtin schemas, got %d", len(reg.List()))
	}

	schema, err := reg.Get("cardio-lifestyle-v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.FeatureCount() != 11 {
		t.Fatalf("expected 11 features, got %d", schema.FeatureCount())
	}

	if _, err := reg.Get("nonexistent"); !errors.Is(err, ErrSchemaUnknown) {
		t.Fatalf("expected ErrSchemaUnknown, got %v", err)
	}
}

func TestRegistryFileOverride(t *testing.T) {
	content := `
schemas:
  - name: cardio-minimal-v1
    features: [age_years, ap_hi, ap_lo]
    policy: ternary
    artifact_base: cardio_minimal_v1
`
	path := filepath.Join(t.TempDir(), "schemas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write schema file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.List()) != 4 {
		t.Fatalf("expected builtins plus one, got %d", len(reg.List()))
	}
	schema, err := reg.Get("cardio-minimal-v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.Policy != "ternary" || schema.FeatureCount() != 3 {
		t.Fatalf("unexpected schema: %+v", schema)
	}
}

func TestRegistryRejectsBadEntries(t *testing.T) {
	bad := map[string]string{
		"missing name":     "schemas:\n  - features: [age_years]\n    policy: binary\n    artifact_base: x\n",
		"no features":      "schemas:\n  - name: x\n    features: []\n    policy: binary\n    artifact_base: x\n",
		"unknown policy":   "schemas:\n  - name: x\n    features: [age_years]\n    policy: quaternary\n    artifact_base: x\n",
		"repeated feature": "schemas:\n  - name: x\n    features: [age_years, age_years]\n    policy: binary\n    artifact_base: x\n",
	}
	for name, content := range bad {
		path := filepath.Join(t.TempDir(), "schemas.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("%s: write schema file: %v", name, err)
		}
		if _, err := LoadRegistry(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
