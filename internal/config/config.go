package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the gateway and the CLI.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Upstream HTTP. A zero timeout keeps the transport default.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	UserAgent   string        `envconfig:"USER_AGENT"`

	// Provider families
	EcotrackEnabled bool `envconfig:"ECOTRACK_ENABLED" default:"true"`
	YalidineEnabled bool `envconfig:"YALIDINE_ENABLED" default:"true"`
	ProcolisEnabled bool `envconfig:"PROCOLIS_ENABLED" default:"true"`
	MaystroEnabled  bool `envconfig:"MAYSTRO_ENABLED" default:"true"`
	SandboxEnabled  bool `envconfig:"SANDBOX_ENABLED" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"courierdz"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ecotrack.enabled", c.EcotrackEnabled),
		attribute.Bool("yalidine.enabled", c.YalidineEnabled),
		attribute.Bool("procolis.enabled", c.ProcolisEnabled),
		attribute.Bool("maystro.enabled", c.MaystroEnabled),
		attribute.Bool("sandbox.enabled", c.SandboxEnabled),
	}
}
