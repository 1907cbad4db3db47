package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", &buf)

	log.Info("hidden")
	log.Warn("shown", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "rows=3")

	log.SetLevel("debug")
	log.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_ForRun(t *testing.T) {
	var buf bytes.Buffer
	log, runID := NewLoggerWithWriter("info", &buf).ForRun()

	require.Len(t, runID, 36)

	log.Info("started")
	assert.True(t, strings.Contains(buf.String(), "run_id="+runID))
}
