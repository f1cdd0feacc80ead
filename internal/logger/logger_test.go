package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, int(slog.LevelInfo), "json")

	l.With("component", "auth").Info("Auth service: login succeeded", "role", "doctor")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Auth service: login succeeded", record["msg"])
	assert.Equal(t, "auth", record["component"])
	assert.Equal(t, "doctor", record["role"])
}

func TestNewWithFormat_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, int(slog.LevelWarn), "text")

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
