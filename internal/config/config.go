// Package config loads process configuration from the environment
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
)

// Config holds the server settings. Cobra flags override these values.
type Config struct {
	GRPCPort     int    `env:"NUZLOCKE_GRPC_PORT" envDefault:"50051"`
	RedisAddr    string `env:"NUZLOCKE_REDIS_ADDR" envDefault:"localhost:6379"`
	JournalPath  string `env:"NUZLOCKE_JOURNAL_PATH" envDefault:"nuzlocke.db"`
	SpeciesFile  string `env:"NUZLOCKE_SPECIES_FILE"`
	AreaCount    int    `env:"NUZLOCKE_AREA_COUNT" envDefault:"213"`
	OTELEndpoint string `env:"NUZLOCKE_OTEL_ENDPOINT"`
	OTELEnabled  bool   `env:"NUZLOCKE_OTEL_ENABLED" envDefault:"true"`
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("NUZLOCKE_GRPC_PORT", "must be between 1 and 65535, got %d", c.GRPCPort)
	}
	if c.RedisAddr == "" {
		vb.RequiredField("NUZLOCKE_REDIS_ADDR")
	}
	if c.JournalPath == "" {
		vb.RequiredField("NUZLOCKE_JOURNAL_PATH")
	}
	if c.AreaCount <= 0 || c.AreaCount > 0xFFFF {
		vb.Fieldf("NUZLOCKE_AREA_COUNT", "must be between 1 and 65535, got %d", c.AreaCount)
	}

	return vb.Build()
}

// TracingEnabled reports whether spans should be exported
func (c *Config) TracingEnabled() bool {
	return c.OTELEnabled && c.OTELEndpoint != ""
}
