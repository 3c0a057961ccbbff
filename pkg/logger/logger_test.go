package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupWriter_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "production", "info")

	Info("project created", "project_id", 7)

	assert.Contains(t, buf.String(), `"msg":"project created"`)
	assert.Contains(t, buf.String(), `"project_id":7`)
	assert.Contains(t, buf.String(), `"service":"obrafin-api"`)
}

func TestSetupWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "development", "warn")

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
