package artifact

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"agriyield/adapters/regress"
	"agriyield/domain/core"
	"agriyield/domain/forecast"
	"agriyield/ports"
)

// Bundle member file names under the store directory
const (
	manifestFile = "manifest.json"
	modelFile    = "model.gob"
	scalerFile   = "scaler.gob"
	encodersFile = "encoders.gob"
	schemaFile   = "schema.gob"
	reportFile   = "report.md"
)

func init() {
	gob.Register(&regress.GradientBoosting{})
	gob.Register(&regress.RandomForest{})
}

// modelEnvelope wraps the regressor interface so gob can round-trip the
// concrete ensemble type
type modelEnvelope struct {
	Model forecast.Regressor
}

// Store persists artifact bundles under one directory: four gob blobs plus
// a JSON manifest tying them to a single training run. Saves are staged in
// a temporary directory and renamed into place so a crashed save never
// leaves a half-written bundle behind.
type Store struct {
	dir string
}

var _ ports.ArtifactStorePort = (*Store)(nil)

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the bundle directory
func (s *Store) Dir() string { return s.dir }

// Save persists all bundle members together
func (s *Store) Save(ctx context.Context, bundle *forecast.ArtifactBundle) error {
	if err := bundle.Validate(); err != nil {
		return fmt.Errorf("refusing to save inconsistent bundle: %w", err)
	}

	parent := filepath.Dir(s.dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	staging, err := os.MkdirTemp(parent, ".bundle-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	manifestJSON, err := json.MarshalIndent(bundle.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, manifestFile), manifestJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := writeGob(filepath.Join(staging, modelFile), modelEnvelope{Model: bundle.Model}); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(staging, scalerFile), bundle.Scaler); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(staging, encodersFile), bundle.Encoders); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(staging, schemaFile), bundle.Schema); err != nil {
		return err
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to clear previous bundle: %w", err)
	}
	if err := os.Rename(staging, s.dir); err != nil {
		return fmt.Errorf("failed to publish bundle: %w", err)
	}

	log.Printf("[ArtifactStore] bundle %s saved to %s", bundle.Manifest.BundleID, s.dir)
	return nil
}

// Load reads the bundle back as one unit. Any missing member yields
// core.ErrArtifactNotFound; a member from a different training run yields
// core.ErrSchemaMismatch.
func (s *Store) Load(ctx context.Context) (*forecast.ArtifactBundle, error) {
	manifestJSON, err := os.ReadFile(filepath.Join(s.dir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: manifest at %s", core.ErrArtifactNotFound, s.dir)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var manifest forecast.Manifest
	if err := json.Unmarshal(manifestJSON, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var envelope modelEnvelope
	if err := readGob(filepath.Join(s.dir, modelFile), &envelope); err != nil {
		return nil, err
	}
	var scaler forecast.FeatureScaler
	if err := readGob(filepath.Join(s.dir, scalerFile), &scaler); err != nil {
		return nil, err
	}
	encoders := make(map[string]*forecast.CategoryEncoder)
	if err := readGob(filepath.Join(s.dir, encodersFile), &encoders); err != nil {
		return nil, err
	}
	var schema forecast.FeatureSchema
	if err := readGob(filepath.Join(s.dir, schemaFile), &schema); err != nil {
		return nil, err
	}

	bundle := &forecast.ArtifactBundle{
		Manifest: manifest,
		Model:    envelope.Model,
		Scaler:   &scaler,
		Encoders: encoders,
		Schema:   schema,
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("bundle at %s is inconsistent: %w", s.dir, err)
	}

	log.Printf("[ArtifactStore] bundle %s loaded from %s (%s, %d features)",
		manifest.BundleID, s.dir, manifest.ModelKind, schema.Len())
	return bundle, nil
}

// SaveReport writes the markdown training report beside the bundle. The
// report is informational and not required for loading.
func (s *Store) SaveReport(report []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, reportFile), report, 0o644); err != nil {
		return fmt.Errorf("failed to write training report: %w", err)
	}
	return nil
}

// LoadReport reads the markdown training report
func (s *Store) LoadReport() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, reportFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: training report", core.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to read training report: %w", err)
	}
	return data, nil
}

func writeGob(path string, value any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(value); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readGob(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrArtifactNotFound, filepath.Base(path))
		}
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()
	if err := gob.NewDecoder(file).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
