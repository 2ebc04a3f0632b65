package app

import (
	"fmt"
	"strings"

	"agriyield/domain/forecast"
)

// RenderTrainingReport builds the markdown training report persisted
// beside the artifact bundle and rendered by the serving layer
func RenderTrainingReport(manifest forecast.Manifest, metrics forecast.Metrics) []byte {
	var b strings.Builder

	b.WriteString("# Yield Forecast Training Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", manifest.RunID)
	fmt.Fprintf(&b, "- Bundle: `%s`\n", manifest.BundleID)
	fmt.Fprintf(&b, "- Trained at: %s\n", manifest.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Model: %s\n", manifest.ModelKind)
	fmt.Fprintf(&b, "- Target column: `%s`\n", metrics.TargetColumn)
	fmt.Fprintf(&b, "- Rows: %d train / %d test\n", metrics.TrainRows, metrics.TestRows)
	fmt.Fprintf(&b, "- Features: %d\n\n", manifest.FeatureCount)

	b.WriteString("## Accuracy\n\n")
	b.WriteString("| Metric | Train | Test |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| R² | %.4f | %.4f |\n", metrics.TrainR2, metrics.TestR2)
	fmt.Fprintf(&b, "| RMSE | %.4f | %.4f |\n", metrics.TrainRMSE, metrics.TestRMSE)
	fmt.Fprintf(&b, "| MAE | n/a | %.4f |\n\n", metrics.TestMAE)

	fmt.Fprintf(&b, "Test absolute error: median %.4f, 90th percentile %.4f\n\n",
		metrics.TestAbsErrMedian, metrics.TestAbsErrP90)

	b.WriteString("## Feature importances\n\n")
	b.WriteString("| Rank | Feature | Importance |\n|---|---|---|\n")
	for i, fi := range metrics.TopImportances(10) {
		fmt.Fprintf(&b, "| %d | %s | %.4f |\n", i+1, fi.Feature, fi.Importance)
	}
	b.WriteString("\n")

	return []byte(b.String())
}
