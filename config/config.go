// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendWorkbook = "workbook"
)

// Config holds all configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Storage       StorageConfig       `yaml:"storage"`
	Vision        VisionConfig        `yaml:"vision"`
	Approvals     ApprovalsConfig     `yaml:"approvals"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// StorageConfig selects and parameterizes the ledger/taxonomy backend.
type StorageConfig struct {
	Backend      string `yaml:"backend"` // postgres|workbook
	WorkbookPath string `yaml:"workbook_path"`
}

// VisionConfig configures the screenshot analysis client and its cost model.
type VisionConfig struct {
	APIKey           string        `yaml:"api_key"`
	Model            string        `yaml:"model"`
	PricePerImage    float64       `yaml:"price_per_image"`
	PriceInputPer1K  float64       `yaml:"price_input_per_1k"`
	PriceOutputPer1K float64       `yaml:"price_output_per_1k"`
	RequestInterval  time.Duration `yaml:"request_interval"`
}

// ApprovalsConfig holds submission review settings.
type ApprovalsConfig struct {
	RequireElevated bool `yaml:"require_elevated"`
	MatchThreshold  int  `yaml:"match_threshold"`
	NameThreshold   int  `yaml:"name_threshold"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string  `yaml:"metrics_address"`
	OTLPEndpoint   string  `yaml:"otlp_endpoint"`
	OTLPInsecure   bool    `yaml:"otlp_insecure"`
	SampleRate     float64 `yaml:"sample_rate"`
	Environment    string  `yaml:"environment"`
}

// LoadConfig loads configuration from a YAML file, falling back to
// environment variables when the file is missing. Env vars always win.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(filename); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS URL is required (nats.url or NATS_URL)")
	}
	switch cfg.Storage.Backend {
	case BackendPostgres:
		if cfg.Postgres.DSN == "" {
			return nil, fmt.Errorf("postgres backend requires a DSN (postgres.dsn or DATABASE_URL)")
		}
	case BackendWorkbook:
		if cfg.Storage.WorkbookPath == "" {
			return nil, fmt.Errorf("workbook backend requires a path (storage.workbook_path or WORKBOOK_PATH)")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendPostgres},
		Vision: VisionConfig{
			Model:            "gpt-4o-mini",
			PricePerImage:    0.00255,
			PriceInputPer1K:  0.0003,
			PriceOutputPer1K: 0.0006,
			RequestInterval:  2 * time.Second,
		},
		Approvals: ApprovalsConfig{
			RequireElevated: true,
			MatchThreshold:  88,
			NameThreshold:   90,
		},
		Observability: ObservabilityConfig{SampleRate: 0.1},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("WORKBOOK_PATH"); v != "" {
		cfg.Storage.WorkbookPath = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Vision.APIKey = v
	}
	if v := os.Getenv("VISION_MODEL"); v != "" {
		cfg.Vision.Model = v
	}
	if v := os.Getenv("REQUIRE_ELEVATED_APPROVERS"); v != "" {
		cfg.Approvals.RequireElevated = v == "true"
	}
	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Approvals.MatchThreshold = n
		}
	}
	if v := os.Getenv("NAME_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Approvals.NameThreshold = n
		}
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		cfg.Observability.OTLPInsecure = v == "true"
	}
	if v := os.Getenv("SAMPLE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Observability.SampleRate = f
		}
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
}
