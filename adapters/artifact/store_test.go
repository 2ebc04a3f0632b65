package artifact

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriyield/adapters/regress"
	"agriyield/domain/core"
	"agriyield/domain/forecast"
)

func trainedBundle(t *testing.T) *forecast.ArtifactBundle {
	t.Helper()

	rng := rand.New(rand.NewSource(7))
	x := make([][]float64, 60)
	y := make([]float64, 60)
	for i := range x {
		x[i] = []float64{rng.Float64() * 10, rng.Float64() * 100, float64(i % 3)}
		y[i] = 2*x[i][0] + x[i][1] + 50*x[i][2]
	}

	scaler, err := forecast.FitScaler(x)
	require.NoError(t, err)
	scaled, err := scaler.TransformMatrix(x)
	require.NoError(t, err)

	model, err := regress.FitGradientBoosting(scaled, y, regress.DefaultBoostConfig())
	require.NoError(t, err)

	enc := forecast.NewCategoryEncoder("crop")
	enc.Fit([]string{"Rice", "Wheat", "Maize"})

	schema := forecast.NewFeatureSchema([]string{"N", "total_rainfall_mm", "crop"})
	bundle := &forecast.ArtifactBundle{
		Manifest: forecast.NewManifest(core.NewRunID(), model, schema, forecast.Metrics{TargetColumn: "yield"}),
		Model:    model,
		Scaler:   scaler,
		Encoders: map[string]*forecast.CategoryEncoder{"crop": enc},
		Schema:   schema,
	}
	require.NoError(t, bundle.Validate())
	return bundle
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bundle")
	store := NewStore(dir)
	ctx := context.Background()

	original := trainedBundle(t)
	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, original.Manifest.BundleID, loaded.Manifest.BundleID)
	assert.Equal(t, original.Schema.Columns, loaded.Schema.Columns)
	assert.Equal(t, original.Schema.Hash, loaded.Schema.Hash)
	assert.Equal(t, original.Encoders["crop"].Classes, loaded.Encoders["crop"].Classes)

	// The reloaded model predicts identically
	input := forecast.InputRecord{"N": 5.0, "total_rainfall_mm": 42.0, "crop": "Wheat"}
	want, _, err := original.Predict(input, forecast.UnseenFallback)
	require.NoError(t, err)
	got, _, err := loaded.Predict(input, forecast.UnseenFallback)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreLoadMissingBundle(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrArtifactNotFound)
}

func TestStoreSaveRejectsInconsistentBundle(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "bundle"))

	bundle := trainedBundle(t)
	bundle.Scaler = nil
	err := store.Save(context.Background(), bundle)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrArtifactNotFound)
}

func TestStoreSaveReplacesPreviousBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bundle")
	store := NewStore(dir)
	ctx := context.Background()

	first := trainedBundle(t)
	require.NoError(t, store.Save(ctx, first))
	second := trainedBundle(t)
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Manifest.BundleID, loaded.Manifest.BundleID)
}

func TestStoreReportRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bundle")
	store := NewStore(dir)
	ctx := context.Background()

	_, err := store.LoadReport()
	assert.ErrorIs(t, err, core.ErrArtifactNotFound)

	require.NoError(t, store.Save(ctx, trainedBundle(t)))
	require.NoError(t, store.SaveReport([]byte("# Report\n")))

	report, err := store.LoadReport()
	require.NoError(t, err)
	assert.Equal(t, "# Report\n", string(report))
}
