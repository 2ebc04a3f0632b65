package forecast

import (
	"fmt"
	"time"

	"agriyield/domain/core"
)

// ManifestVersion is the current on-disk bundle format version
const ManifestVersion = "1"

// Manifest is the bundle consistency tag persisted beside the artifact
// blobs. Loading verifies it against the loaded members so a bundle
// assembled from mismatched training runs is rejected instead of served.
type Manifest struct {
	BundleID      core.BundleID   `json:"bundle_id"`
	RunID         core.RunID      `json:"run_id"`
	FormatVersion string          `json:"format_version"`
	CreatedAt     time.Time       `json:"created_at"`
	ModelKind     string          `json:"model_kind"`
	TargetColumn  string          `json:"target_column"`
	FeatureCount  int             `json:"feature_count"`
	SchemaHash    core.SchemaHash `json:"schema_hash"`
	Metrics       Metrics         `json:"metrics"`
}

// NewManifest stamps a manifest for a freshly trained bundle
func NewManifest(runID core.RunID, model Regressor, schema FeatureSchema, metrics Metrics) Manifest {
	return Manifest{
		BundleID:      core.NewBundleID(),
		RunID:         runID,
		FormatVersion: ManifestVersion,
		CreatedAt:     time.Now().UTC(),
		ModelKind:     model.Kind(),
		TargetColumn:  metrics.TargetColumn,
		FeatureCount:  schema.Len(),
		SchemaHash:    schema.Hash,
		Metrics:       metrics,
	}
}

// Verify checks the manifest against a loaded schema
func (m Manifest) Verify(schema FeatureSchema) error {
	if m.FormatVersion != ManifestVersion {
		return core.NewSchemaMismatchError(
			fmt.Sprintf("bundle format version %q, expected %q", m.FormatVersion, ManifestVersion))
	}
	if err := schema.Verify(); err != nil {
		return err
	}
	if m.SchemaHash != schema.Hash {
		return core.NewSchemaMismatchError("manifest schema hash does not match loaded schema")
	}
	if m.FeatureCount != schema.Len() {
		return core.NewSchemaMismatchError(
			fmt.Sprintf("manifest declares %d features, schema has %d", m.FeatureCount, schema.Len()))
	}
	return nil
}
