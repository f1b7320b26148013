// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Store backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// StoreBackend selects the persistence backend: "json" or "sqlite".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"json"`

	// DBPath is the ledger file (json) or database file (sqlite).
	// Defaults depend on the backend.
	DBPath string `env:"DB_PATH"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and fills in backend-dependent defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendJSON:
		if cfg.DBPath == "" {
			cfg.DBPath = "./data/ledger.json"
		}
	case BackendSQLite:
		if cfg.DBPath == "" {
			cfg.DBPath = "./data/ledger.db"
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return cfg, nil
}
