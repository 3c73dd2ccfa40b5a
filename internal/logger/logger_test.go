// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, LevelFor(0))
	assert.Equal(t, zapcore.InfoLevel, LevelFor(1))
	assert.Equal(t, zapcore.DebugLevel, LevelFor(2))
	assert.Equal(t, zapcore.DebugLevel, LevelFor(5))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(true, 1, zapcore.AddSync(&buf))
	log.Debug("hidden")
	log.Info("project saga", zap.String("state", "committed"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "project saga", entry["msg"])
	assert.Equal(t, "committed", entry["state"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(false, 0, zapcore.AddSync(&buf))
	log.Info("hidden")
	log.Warn("rollback slow")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "rollback slow")
}
