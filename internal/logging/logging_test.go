package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/tipline/internal/config"
)

func TestNew_JSONFormat(t *testing.T) {
	logger, flush, err := New(config.LoggingConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer flush()

	// Must not panic with structured key/value pairs.
	logger.Info("server started", "port", 8080, "debug", false)
	logger.Warn("slow query", "duration_ms", 1200)
}

func TestNew_ConsoleFormat(t *testing.T) {
	logger, flush, err := New(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer flush()

	logger.Debug("catalog reloaded", "count", 3)
}

func TestNew_UnknownLevelFallsBack(t *testing.T) {
	logger, flush, err := New(config.LoggingConfig{Level: "chatty", Format: "json"})
	require.NoError(t, err)
	defer flush()

	assert.NotNil(t, logger)
}

func TestNop(t *testing.T) {
	logger := Nop()
	require.NotNil(t, logger)

	// Nop logger swallows everything.
	logger.Error("ignored", "key", "value")
}
