package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"agriyield/domain/forecast"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Model     ModelConfig
	Artifacts ArtifactConfig
	Server    ServerConfig
	Database  DatabaseConfig
}

// DataConfig names the three source tables. CSV and .xlsx files are both
// accepted.
type DataConfig struct {
	CropFile    string
	SoilFile    string
	WeatherFile string
}

// ModelConfig holds training settings
type ModelConfig struct {
	// Kind selects the ensemble: gradient_boosting (default) or random_forest
	Kind string
	// TargetColumn, when set, overrides the target heuristic. Production
	// deployments should set it explicitly.
	TargetColumn string
	// UnseenPolicy decides how inference treats category values never seen
	// in training
	UnseenPolicy forecast.UnseenPolicy
}

// ArtifactConfig holds bundle persistence settings
type ArtifactConfig struct {
	Dir string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional run-registry database. Empty URL means
// no registry.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from the environment, with .env support for
// local development
func Load() (*Config, error) {
	// A missing .env file is not an error; the environment may be complete
	_ = godotenv.Load()

	policy, err := forecast.ParseUnseenPolicy(os.Getenv("UNSEEN_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg := &Config{
		Data: DataConfig{
			CropFile:    envOr("CROP_FILE", "data/crop_yield.csv"),
			SoilFile:    envOr("SOIL_FILE", "data/state_soil_data.csv"),
			WeatherFile: envOr("WEATHER_FILE", "data/state_weather_data_1997_2020.csv"),
		},
		Model: ModelConfig{
			Kind:         envOr("MODEL_KIND", forecast.ModelGradientBoosting),
			TargetColumn: os.Getenv("TARGET_COLUMN"),
			UnseenPolicy: policy,
		},
		Artifacts: ArtifactConfig{
			Dir: envOr("ARTIFACT_DIR", "module/bundle"),
		},
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Data.CropFile == "" || c.Data.SoilFile == "" || c.Data.WeatherFile == "" {
		return fmt.Errorf("invalid config: all three source table paths are required")
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("invalid config: artifact directory is required")
	}
	switch c.Model.Kind {
	case forecast.ModelGradientBoosting, forecast.ModelRandomForest:
	default:
		return fmt.Errorf("invalid config: unknown model kind %q", c.Model.Kind)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
