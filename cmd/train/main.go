package main

import (
	"context"
	"log"

	"agriyield/adapters/artifact"
	"agriyield/adapters/excel"
	"agriyield/adapters/postgres"
	"agriyield/adapters/regress"
	"agriyield/app"
	"agriyield/internal/config"
	"agriyield/ports"
)

// train runs the offline pipeline: merge the three source tables, fit the
// configured model, and publish the artifact bundle.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	model, err := regress.TrainerFor(cfg.Model.Kind)
	if err != nil {
		log.Fatalf("model: %v", err)
	}

	var registry ports.RunRegistryPort = postgres.NoopRegistry{}
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("database: %v", err)
		}
		registry = postgres.NewRunRepository(db)
	}

	opts := app.DefaultTrainOptions()
	opts.TargetColumn = cfg.Model.TargetColumn

	trainer := app.NewTrainer(
		excel.PathReader{},
		model,
		artifact.NewStore(cfg.Artifacts.Dir),
		registry,
		opts,
	)

	bundle, metrics, err := trainer.Run(context.Background(),
		cfg.Data.CropFile, cfg.Data.SoilFile, cfg.Data.WeatherFile)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	log.Printf("bundle %s saved to %s (test R² %.4f)",
		bundle.Manifest.BundleID, cfg.Artifacts.Dir, metrics.TestR2)
}
