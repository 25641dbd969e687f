package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// resetFlags swaps in a fresh default FlagSet and os.Args so ParseFlags can
// be called more than once per test binary.
func resetFlags(t *testing.T, args ...string) {
	t.Helper()

	oldCommandLine := flag.CommandLine
	oldArgs := os.Args
	t.Cleanup(func() {
		flag.CommandLine = oldCommandLine
		os.Args = oldArgs
	})

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = append([]string{os.Args[0]}, args...)
}

func TestParseFlags_AllFlags(t *testing.T) {
	resetFlags(t,
		"-a", "https://api.example.com",
		"-d", "expenses.db",
		"-token-path", "/tmp/token",
		"-request-timeout", "45s",
		"-sync-interval", "2m",
		"-c", "cfg.json",
	)

	cfg := ParseFlags()

	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, "expenses.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/token", cfg.Auth.TokenPath)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	resetFlags(t)

	cfg := ParseFlags()

	assert.Empty(t, cfg.Adapter.BaseURL)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	resetFlags(t, "-config", "alias.json")

	cfg := ParseFlags()

	assert.Equal(t, "alias.json", cfg.JSONFilePath)
}
