package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	// DurationMillisecondsMetric enables the extra ms-based duration histogram
	DurationMillisecondsMetric bool `env:"HTTP_DURATION_MS_METRIC" envDefault:"false"`
}

type OTLPConfig struct {
	Endpoint      string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	ServiceName   string `env:"OTEL_SERVICE_NAME" envDefault:"products-api"`
	Environment   string `env:"OTEL_ENVIRONMENT" envDefault:"development"`
	ExportEnabled bool   `env:"OTEL_EXPORT_ENABLED" envDefault:"true"`
}

type CatalogConfig struct {
	// Seed loads the Apple/Tree/House demo products at startup
	Seed bool `env:"CATALOG_SEED" envDefault:"true"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}
