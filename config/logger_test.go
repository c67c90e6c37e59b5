package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "warn"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		var buf bytes.Buffer
		logger := newLogger(LoggingConfig{Level: level}, &buf)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel(), "level %q", level)
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "info", File: path}, &buf)

	logger.Info().Str("component", "test").Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
}
