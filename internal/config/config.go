package config

import (
	"github.com/caarlos0/env/v11"

	"ad-console/internal/config/configs"
)

// Config aggregates all configuration sections for the console. Fields
// are populated from environment variables using the caarlos0/env
// library; the nested structs are tagged with envPrefix so their fields
// are parsed with the given prefix. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the console's own HTTP server.
	// Variables prefixed with HTTP_ populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Variables prefixed with
	// LOG_ populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Upstream configures access to the ad server being administered.
	// Variables prefixed with UPSTREAM_ populate this struct.
	Upstream configs.Upstream `envPrefix:"UPSTREAM_"`

	// Store configures the settings database. Variables prefixed with
	// STORE_ populate this struct.
	Store configs.Store `envPrefix:"STORE_"`
}

// Load reads configuration from environment variables into a Config.
// All fields fall back to their declared defaults when no environment
// variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
