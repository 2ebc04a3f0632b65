package app

import (
	"context"
	"sync/atomic"
	"time"

	"agriyield/domain/core"
	"agriyield/domain/forecast"
	"agriyield/internal"
	"agriyield/ports"
)

// Forecaster is the serving-side state holder. It references the current
// artifact bundle behind an atomic pointer: predictions read the bundle
// without locks, and installing a new bundle is a single pointer swap so
// in-flight calls see the old or the new bundle, never a mix.
type Forecaster struct {
	bundle atomic.Pointer[forecast.ArtifactBundle]
	policy forecast.UnseenPolicy
	log    *internal.Logger
}

// NewForecaster creates an unloaded forecaster
func NewForecaster(policy forecast.UnseenPolicy) *Forecaster {
	if policy == "" {
		policy = forecast.UnseenFallback
	}
	return &Forecaster{
		policy: policy,
		log:    internal.DefaultLogger.WithPrefix("Forecaster"),
	}
}

// Ready reports whether a bundle is installed
func (f *Forecaster) Ready() bool {
	return f.bundle.Load() != nil
}

// Install atomically publishes a bundle to serving traffic
func (f *Forecaster) Install(bundle *forecast.ArtifactBundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	f.bundle.Store(bundle)
	f.log.Info("bundle %s installed (%s, target %s)",
		bundle.Manifest.BundleID, bundle.Manifest.ModelKind, bundle.Manifest.TargetColumn)
	return nil
}

// LoadFrom loads the persisted bundle and installs it. On failure the
// previously installed bundle, if any, keeps serving.
func (f *Forecaster) LoadFrom(ctx context.Context, store ports.ArtifactStorePort) error {
	bundle, err := store.Load(ctx)
	if err != nil {
		return err
	}
	return f.Install(bundle)
}

// Predict scores one raw input record against the installed bundle.
// Fails with core.ErrNotReady before a bundle is installed.
func (f *Forecaster) Predict(input forecast.InputRecord) (float64, error) {
	bundle := f.bundle.Load()
	if bundle == nil {
		return 0, core.ErrNotReady
	}

	prediction, unseen, err := bundle.Predict(input, f.policy)
	if err != nil {
		return 0, err
	}
	if f.policy == forecast.UnseenWarnFallback {
		for _, column := range unseen {
			f.log.Warn("unseen category in column %s mapped to fallback code", column)
		}
	}
	return prediction, nil
}

// Diagnostics is the model inspection surface for operational reporting
type Diagnostics struct {
	BundleID     core.BundleID                `json:"bundle_id"`
	ModelKind    string                       `json:"model_kind"`
	TargetColumn string                       `json:"target_column"`
	Features     []string                     `json:"features"`
	Metrics      forecast.Metrics             `json:"metrics"`
	TopFeatures  []forecast.FeatureImportance `json:"top_features"`
	CreatedAt    time.Time                    `json:"created_at"`
}

// Diagnostics exposes the resolved target, the frozen schema, and the last
// computed accuracy metrics
func (f *Forecaster) Diagnostics() (*Diagnostics, error) {
	bundle := f.bundle.Load()
	if bundle == nil {
		return nil, core.ErrNotReady
	}
	m := bundle.Manifest
	return &Diagnostics{
		BundleID:     m.BundleID,
		ModelKind:    m.ModelKind,
		TargetColumn: m.TargetColumn,
		Features:     append([]string(nil), bundle.Schema.Columns...),
		Metrics:      m.Metrics,
		TopFeatures:  m.Metrics.TopImportances(10),
		CreatedAt:    m.CreatedAt,
	}, nil
}
