package forecast

import (
	"fmt"

	"agriyield/domain/core"
)

// ArtifactBundle is the unit of persistence and of "model is ready" state:
// the trained model together with the fitted scaler, the category encoders,
// and the frozen feature schema from the same training run. The four parts
// are loaded together or not at all, and the bundle is immutable once built.
type ArtifactBundle struct {
	Manifest Manifest
	Model    Regressor
	Scaler   *FeatureScaler
	Encoders map[string]*CategoryEncoder
	Schema   FeatureSchema
}

// Validate checks that the bundle members are mutually consistent
func (b *ArtifactBundle) Validate() error {
	if b.Model == nil {
		return fmt.Errorf("%w: model", core.ErrArtifactNotFound)
	}
	if b.Scaler == nil {
		return fmt.Errorf("%w: scaler", core.ErrArtifactNotFound)
	}
	if b.Encoders == nil {
		return fmt.Errorf("%w: encoders", core.ErrArtifactNotFound)
	}
	if b.Schema.Len() == 0 {
		return fmt.Errorf("%w: feature schema", core.ErrArtifactNotFound)
	}
	if err := b.Manifest.Verify(b.Schema); err != nil {
		return err
	}
	if b.Scaler.Len() != b.Schema.Len() {
		return core.NewSchemaMismatchError(
			fmt.Sprintf("scaler fitted on %d features, schema has %d", b.Scaler.Len(), b.Schema.Len()))
	}
	if b.Model.NumFeatures() != b.Schema.Len() {
		return core.NewSchemaMismatchError(
			fmt.Sprintf("model fitted on %d features, schema has %d", b.Model.NumFeatures(), b.Schema.Len()))
	}
	for column := range b.Encoders {
		if _, ok := b.Schema.Index(column); !ok {
			return core.NewSchemaMismatchError(
				fmt.Sprintf("encoder for column %s not present in schema", column))
		}
	}
	return nil
}

// Predict scores one raw input record against the bundle: default-fill,
// schema ordering, category encoding, scaling, then the model forward pass.
// Pure with respect to the bundle and the input; safe under concurrency.
func (b *ArtifactBundle) Predict(input InputRecord, policy UnseenPolicy) (float64, []string, error) {
	vector, unseen, err := TransformRecord(input, b.Schema, b.Encoders, policy)
	if err != nil {
		return 0, nil, err
	}
	scaled, err := b.Scaler.TransformVector(vector)
	if err != nil {
		return 0, nil, err
	}
	return b.Model.Predict(scaled), unseen, nil
}
