package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeConfigFile(t, `{
		"adapter": {"base_url": "https://api.example.com", "request_timeout": "20s"},
		"storage": {"db": {"dsn": "expenses.db"}},
		"auth": {"token_path": "/home/u/.expensesync/token"},
		"workers": {"sync_interval": "3m"}
	}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "expenses.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/home/u/.expensesync/token", cfg.Auth.TokenPath)
	assert.Equal(t, 3*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	path := writeConfigFile(t, `{"adapter": {"request_timeout": 15000000000}}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"adapter": `)

	_, err := parseJSON(path)

	assert.Error(t, err)
}

func TestClientConfigValidate(t *testing.T) {
	valid := &ClientConfig{
		Adapter: ClientAdapter{BaseURL: "https://api.example.com", RequestTimeout: time.Second},
		Storage: ClientStorage{DB: ClientDB{DSN: "expenses.db"}},
		Auth:    ClientAuth{TokenPath: "token"},
		Workers: ClientWorkers{SyncInterval: time.Minute},
	}
	require.NoError(t, valid.validate())

	noDSN := *valid
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.validate(), ErrInvalidStorageConfigs)

	noURL := *valid
	noURL.Adapter.BaseURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidAdapterConfigs)

	noToken := *valid
	noToken.Auth.TokenPath = ""
	assert.ErrorIs(t, noToken.validate(), ErrInvalidAuthConfigs)

	noInterval := *valid
	noInterval.Workers.SyncInterval = 0
	assert.ErrorIs(t, noInterval.validate(), ErrInvalidWorkerConfigs)
}
