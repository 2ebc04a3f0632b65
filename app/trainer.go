package app

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"

	"agriyield/adapters/regress"
	"agriyield/domain/core"
	"agriyield/domain/forecast"
	"agriyield/domain/tabular"
	"agriyield/internal"
	"agriyield/ports"
)

// Target column candidates, checked in priority order
var targetCandidates = []string{"yield", "production", "crop_yield"}

// TrainOptions controls one training run
type TrainOptions struct {
	// TargetColumn overrides the target heuristic when set. Production
	// deployments should set it explicitly; the heuristic exists for
	// exploratory runs and logs a warning when it falls back.
	TargetColumn string
	TestFraction float64
	Seed         int64
}

// DefaultTrainOptions returns the historical split settings
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{TestFraction: 0.2, Seed: 42}
}

// Trainer runs the offline training pipeline: merge the sources,
// preprocess, fit, evaluate, and publish the artifact bundle
type Trainer struct {
	reader   ports.TableReaderPort
	model    ports.ModelTrainerPort
	store    ports.ArtifactStorePort
	registry ports.RunRegistryPort
	opts     TrainOptions
	log      *internal.Logger
}

// NewTrainer wires the training pipeline
func NewTrainer(reader ports.TableReaderPort, model ports.ModelTrainerPort, store ports.ArtifactStorePort, registry ports.RunRegistryPort, opts TrainOptions) *Trainer {
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		opts.TestFraction = 0.2
	}
	return &Trainer{
		reader:   reader,
		model:    model,
		store:    store,
		registry: registry,
		opts:     opts,
		log:      internal.DefaultLogger.WithPrefix("Trainer"),
	}
}

func (t *Trainer) readTable(name, path string) (*tabular.Table, error) {
	table, err := t.reader.ReadTable(path)
	if err != nil {
		return nil, core.NewDataError("load", fmt.Sprintf("%s table: %v", name, err))
	}
	return table, nil
}

// Run executes the full offline job from the three source tables through
// bundle publication
func (t *Trainer) Run(ctx context.Context, cropPath, soilPath, weatherPath string) (*forecast.ArtifactBundle, forecast.Metrics, error) {
	crop, err := t.readTable("crop", cropPath)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}
	soil, err := t.readTable("soil", soilPath)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}
	weather, err := t.readTable("weather", weatherPath)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}
	t.log.Info("loaded sources: crop %d rows, soil %d rows, weather %d rows",
		crop.RowCount(), soil.RowCount(), weather.RowCount())

	merged, err := tabular.Merge(crop, soil, weather)
	if err != nil {
		return nil, forecast.Metrics{}, fmt.Errorf("merge stage: %w", err)
	}
	t.log.Info("merged table: %d rows, %d columns", merged.RowCount(), len(merged.Columns))

	frame, encoders, err := forecast.FitTransform(merged)
	if err != nil {
		return nil, forecast.Metrics{}, fmt.Errorf("preprocess stage: %w", err)
	}
	t.log.Info("feature frame: %d rows, %d columns", frame.RowCount(), frame.ColumnCount())
	if dropped := merged.RowCount() - frame.RowCount(); dropped > 0 {
		t.log.Warn("drop-NA discarded %d of %d rows; sparse joins shrink the training set",
			dropped, merged.RowCount())
	}

	bundle, metrics, err := t.TrainFrame(ctx, frame, encoders)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}

	if err := t.store.Save(ctx, bundle); err != nil {
		return nil, forecast.Metrics{}, fmt.Errorf("artifact stage: %w", err)
	}
	if reporter, ok := t.store.(interface{ SaveReport([]byte) error }); ok {
		if err := reporter.SaveReport(RenderTrainingReport(bundle.Manifest, metrics)); err != nil {
			t.log.Warn("training report not written: %v", err)
		}
	}

	run := ports.TrainingRun{
		RunID:    bundle.Manifest.RunID,
		BundleID: bundle.Manifest.BundleID,
		Manifest: bundle.Manifest,
		Metrics:  metrics,
	}
	if err := t.registry.RecordRun(ctx, run); err != nil {
		// The bundle is already published; a registry outage should not
		// fail the run
		t.log.Warn("run registry unavailable: %v", err)
	}

	return bundle, metrics, nil
}

// TrainFrame fits the model on a preprocessed frame and assembles the
// artifact bundle. Training fails explicitly when the frame is empty.
func (t *Trainer) TrainFrame(ctx context.Context, frame *forecast.FeatureFrame, encoders map[string]*forecast.CategoryEncoder) (*forecast.ArtifactBundle, forecast.Metrics, error) {
	if err := frame.Validate(); err != nil {
		return nil, forecast.Metrics{}, err
	}

	target, err := t.resolveTarget(frame, encoders)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}
	t.log.Info("using %q as target variable", target)

	x, y, featureColumns, err := frame.SplitTarget(target)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}

	trainIdx, testIdx, err := splitIndices(len(x), t.opts.TestFraction, t.opts.Seed)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}
	trainX, trainY := gather(x, y, trainIdx)
	testX, testY := gather(x, y, testIdx)

	scaler, err := forecast.FitScaler(trainX)
	if err != nil {
		return nil, forecast.Metrics{}, fmt.Errorf("scaler stage: %w", err)
	}
	scaledTrainX, err := scaler.TransformMatrix(trainX)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}
	scaledTestX, err := scaler.TransformMatrix(testX)
	if err != nil {
		return nil, forecast.Metrics{}, err
	}

	t.log.Info("training %s on %d rows, %d features", t.model.Kind(), len(trainX), len(featureColumns))
	model, err := t.model.Fit(ctx, scaledTrainX, trainY)
	if err != nil {
		return nil, forecast.Metrics{}, fmt.Errorf("model stage: %w", err)
	}

	metrics := evaluate(model, target, scaledTrainX, trainY, scaledTestX, testY, featureColumns)
	t.log.Info("train R² %.4f, test R² %.4f, test RMSE %.4f, test MAE %.4f",
		metrics.TrainR2, metrics.TestR2, metrics.TestRMSE, metrics.TestMAE)
	for _, fi := range metrics.TopImportances(5) {
		t.log.Debug("feature importance: %s %.4f", fi.Feature, fi.Importance)
	}

	schema := forecast.NewFeatureSchema(featureColumns)
	bundle := &forecast.ArtifactBundle{
		Manifest: forecast.NewManifest(core.NewRunID(), model, schema, metrics),
		Model:    model,
		Scaler:   scaler,
		Encoders: encoders,
		Schema:   schema,
	}
	if err := bundle.Validate(); err != nil {
		return nil, forecast.Metrics{}, err
	}
	return bundle, metrics, nil
}

// resolveTarget picks the target column: explicit config, then the named
// candidates, then the first numeric column with a warning
func (t *Trainer) resolveTarget(frame *forecast.FeatureFrame, encoders map[string]*forecast.CategoryEncoder) (string, error) {
	pick := func(name string) (string, error) {
		if _, isCategorical := encoders[name]; isCategorical {
			return "", core.NewDataError("target",
				fmt.Sprintf("column %s is categorical and cannot be a regression target", name))
		}
		return name, nil
	}

	if t.opts.TargetColumn != "" {
		if _, ok := frame.ColumnIndex(t.opts.TargetColumn); !ok {
			return "", fmt.Errorf("%w: configured target %s", core.ErrColumnNotFound, t.opts.TargetColumn)
		}
		return pick(t.opts.TargetColumn)
	}

	for _, candidate := range targetCandidates {
		if _, ok := frame.ColumnIndex(candidate); ok {
			return pick(candidate)
		}
	}

	for _, name := range frame.Columns {
		if _, isCategorical := encoders[name]; isCategorical {
			continue
		}
		t.log.Warn("no yield/production/crop_yield column found; falling back to %q as target", name)
		return name, nil
	}
	return "", core.NewDataError("target", "no numeric column available as a regression target")
}

// splitIndices deterministically shuffles row indices and carves off the
// test fraction
func splitIndices(n int, testFraction float64, seed int64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, core.NewEmptyTrainingSetError(
			fmt.Sprintf("%d rows is not enough to split train and test", n))
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testFraction)
	if nTest == 0 {
		nTest = 1
	}
	return perm[nTest:], perm[:nTest], nil
}

func gather(x [][]float64, y []float64, indices []int) ([][]float64, []float64) {
	outX := make([][]float64, len(indices))
	outY := make([]float64, len(indices))
	for i, idx := range indices {
		outX[i] = x[idx]
		outY[i] = y[idx]
	}
	return outX, outY
}

// evaluate computes the accuracy metrics and ranked importances
func evaluate(model forecast.Regressor, target string, trainX [][]float64, trainY []float64, testX [][]float64, testY []float64, features []string) forecast.Metrics {
	trainPred := regress.PredictAll(model, trainX)
	testPred := regress.PredictAll(model, testX)

	absErr := make([]float64, len(testY))
	for i := range testY {
		absErr[i] = math.Abs(testPred[i] - testY[i])
	}
	medianErr, _ := stats.Median(absErr)
	p90Err, _ := stats.Percentile(absErr, 90)

	metrics := forecast.Metrics{
		TargetColumn: target,
		TrainRows:    len(trainY),
		TestRows:     len(testY),
		TrainR2:      regress.R2(trainY, trainPred),
		TestR2:       regress.R2(testY, testPred),
		TrainRMSE:    regress.RMSE(trainY, trainPred),
		TestRMSE:     regress.RMSE(testY, testPred),
		TestMAE:      regress.MAE(testY, testPred),
		TrainedAt:    time.Now().UTC(),

		TestAbsErrMedian: medianErr,
		TestAbsErrP90:    p90Err,

		Importances: forecast.RankImportances(features, model.FeatureImportances()),
	}
	return metrics
}
