package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_NotNil(t *testing.T) {
	log := NewLogger("test-role")
	require.NotNil(t, log)
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)

	// Must not panic even though output is discarded.
	assert.NotPanics(t, func() {
		log.Info().Str("k", "v").Msg("dropped")
		log.Err(assert.AnError).Msg("dropped too")
	})
}

func TestFromContext_RoundTrip(t *testing.T) {
	log := Nop()
	ctx := log.WithContext(context.Background())

	got := FromContext(ctx)

	require.NotNil(t, got)
	assert.NotPanics(t, func() { got.Debug().Msg("ok") })
}

func TestFromContext_EmptyContext(t *testing.T) {
	// No logger attached: zerolog falls back to the global logger.
	got := FromContext(context.Background())
	require.NotNil(t, got)
}

func TestGetChildLogger(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}
