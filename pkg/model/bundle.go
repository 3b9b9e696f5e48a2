package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cardioscope-ai/riskscore/pkg/features"
)

// Bundle pairs one schema with its fitted scaler and trained network. Bundles
// are constructed once at startup and shared read-only for the process
// lifetime; every consistency check happens at load so a wrong artifact/schema
// pairing fails the deployment, not a patient's request.
type Bundle struct {
	Schema  features.Schema
	Scaler  *Scaler
	Network *Network
}

// LoadBundle reads <artifact_base>_scaler.json and <artifact_base>_model.json
// from dir and verifies both against the schema's cardinality.
func LoadBundle(dir string, schema features.Schema) (*Bundle, error) {
	scaler := &Scaler{}
	if err := readArtifact(filepath.Join(dir, schema.ArtifactBase+"_scaler.json"), scaler); err != nil {
		return nil, fmt.Errorf("schema %s scaler: %w", schema.Name, err)
	}
	if err := scaler.validate(); err != nil {
		return nil, fmt.Errorf("schema %s scaler: %w", schema.Name, err)
	}

	network := &Network{}
	if err := readArtifact(filepath.Join(dir, schema.ArtifactBase+"_model.json"), network); err != nil {
		return nil, fmt.Errorf("schema %s model: %w", schema.Name, err)
	}
	if err := network.validate(); err != nil {
		return nil, fmt.Errorf("schema %s model: %w", schema.Name, err)
	}

	bundle := &Bundle{Schema: schema, Scaler: scaler, Network: network}
	if err := bundle.validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) validate() error {
	want := b.Schema.FeatureCount()
	if b.Scaler.FeatureCount() != want {
		return fmt.Errorf("schema %s declares %d features but scaler fit on %d: %w",
			b.Schema.Name, want, b.Scaler.FeatureCount(), ErrSchemaMismatch)
	}
	if b.Network.InputSize() != want {
		return fmt.Errorf("schema %s declares %d features but network expects %d: %w",
			b.Schema.Name, want, b.Network.InputSize(), ErrSchemaMismatch)
	}
	for i, name := range b.Scaler.FeatureNames {
		if name != b.Schema.Features[i] {
			return fmt.Errorf("schema %s slot %d is '%s' but scaler fit on '%s': %w",
				b.Schema.Name, i, b.Schema.Features[i], name, ErrSchemaMismatch)
		}
	}
	return nil
}

// Score scales the raw vector and runs one forward pass.
func (b *Bundle) Score(vector []float64) (float64, error) {
	scaled, err := b.Scaler.Transform(vector)
	if err != nil {
		return 0, err
	}
	return b.Network.Predict(scaled)
}

func readArtifact(path string, target interface{}) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("corrupt artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
