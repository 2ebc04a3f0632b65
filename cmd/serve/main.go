package main

import (
	"context"
	"log"

	"agriyield/adapters/artifact"
	"agriyield/adapters/excel"
	"agriyield/adapters/postgres"
	"agriyield/adapters/weather"
	"agriyield/app"
	"agriyield/internal/config"
	"agriyield/ports"
	"agriyield/ui"
)

// serve loads the persisted artifact bundle and exposes the forecast API.
// Startup fails when no valid bundle exists; a serving process never runs
// with a partially loaded model.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store := artifact.NewStore(cfg.Artifacts.Dir)
	forecaster := app.NewForecaster(cfg.Model.UnseenPolicy)
	if err := forecaster.LoadFrom(context.Background(), store); err != nil {
		log.Fatalf("no usable artifact bundle in %s: %v (run the train command first)", cfg.Artifacts.Dir, err)
	}

	soilTable, err := excel.PathReader{}.ReadTable(cfg.Data.SoilFile)
	if err != nil {
		log.Fatalf("soil table: %v", err)
	}
	soil, err := app.NewSoilCatalog(soilTable)
	if err != nil {
		log.Fatalf("soil catalog: %v", err)
	}

	var registry ports.RunRegistryPort = postgres.NoopRegistry{}
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		registry = postgres.NewRunRepository(db)
	}

	server := ui.NewServer(forecaster, soil, weather.NewMockProvider(), registry, store)
	if err := server.Start("0.0.0.0:" + cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
