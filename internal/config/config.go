package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the sync server address and request timeout used by the
	// outbound transport layer.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local on-device store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Auth holds settings for obtaining the API token used on every sync
	// request. Token acquisition itself happens outside this application;
	// only the location of the stored token is configured here.
	Auth Auth `envPrefix:"AUTH_"`

	// Workers holds configuration for background jobs, currently only the
	// periodic sync interval.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file. When
	// non-empty, the file is parsed and merged underneath the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings for the outbound sync transport.
type Adapter struct {
	// BaseURL is the sync server base URL, e.g. "https://api.example.com".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the per-request timeout for sync calls (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (plus driver options), e.g.
	// "expenses.db?_foreign_keys=on".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Auth holds settings for the locally stored API token.
type Auth struct {
	// TokenPath is the file the login flow writes the bearer token to.
	// Env: AUTH_TOKEN_PATH
	TokenPath string `env:"TOKEN_PATH"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background sync job runs
	// (e.g. "5m").
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig builds the merged configuration from environment
// variables, command-line flags and the optional JSON file, in that order of
// precedence.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
