package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"ADAPTER_BASE_URL":        "https://api.example.com",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		"STORAGE_DB_DSN": "/var/lib/expenses/expenses.db",

		"AUTH_TOKEN_PATH": "/var/lib/expenses/token",

		"WORKERS_SYNC_INTERVAL": "10m",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/var/lib/expenses/expenses.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/lib/expenses/token", cfg.Auth.TokenPath)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	t.Setenv("STORAGE_DB_DSN", "expenses.db")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "expenses.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Adapter.BaseURL)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "soon")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}
