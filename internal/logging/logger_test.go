package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/soltixdb/mapredict/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	logger.Info("window selected", "window", 3, "mse", 4.0)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "window selected", entry["message"])
	assert.Equal(t, float64(3), entry["window"])
	assert.Equal(t, 4.0, entry["mse"])
}

func TestLogger_ErrorFieldIsString(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	k, v := Err(errors.New("boom"))
	logger.Warn("prediction failed", k, v)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())
	assert.False(t, logger.Enabled(zerolog.DebugLevel))
	assert.True(t, logger.Enabled(zerolog.ErrorLevel))

	logger.Error("shown")
	assert.NotZero(t, buf.Len())
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter(&buf, zerolog.DebugLevel)
	child := parent.With("component", "predictor")

	child.Debug("hello")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "predictor", entry["component"])

	// Parent keeps its own fields
	buf.Reset()
	parent.Debug("hello")
	entry = decodeLine(t, &buf)
	_, ok := entry["component"]
	assert.False(t, ok)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	ctx := WithLogger(context.Background(), logger)
	ctx = WithSeriesID(ctx, "cpu.load")
	ctx = WithRunID(ctx, "run-1")

	assert.Same(t, logger, FromContext(ctx))

	InfoCtx(ctx, "forecast completed")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "cpu.load", entry["series_id"])
	assert.Equal(t, "run-1", entry["run_id"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, Global(), FromContext(context.Background()))
}

func TestSetGlobal(t *testing.T) {
	original := Global()
	defer SetGlobal(original)

	var buf bytes.Buffer
	SetGlobal(NewWithWriter(&buf, zerolog.InfoLevel))
	Info("from global")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "from global", entry["message"])
}

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "predict.log")

	logger, err := NewFromConfig(config.LoggingConfig{
		Level:      "warn",
		Format:     "json",
		OutputPath: path,
	})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
}

func TestNewFromConfig_InvalidLevelDefaultsToInfo(t *testing.T) {
	logger, err := NewFromConfig(config.LoggingConfig{Level: "loud", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(zerolog.DebugLevel))
	assert.True(t, logger.Enabled(zerolog.InfoLevel))
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() {
		logger.Error("nothing", "key", "value")
	})
}
