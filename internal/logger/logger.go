// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zap logger used by the CLI and the dev server.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelFor maps the -v flag count to a level: none shows warnings and
// errors, -v adds info, -vv and above add debug.
func LevelFor(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// New returns a logger writing to stderr, as JSON when jsonOutput is set and
// as console text otherwise.
func New(jsonOutput bool, verbosity int) *zap.Logger {
	return NewWithSink(jsonOutput, verbosity, zapcore.Lock(os.Stderr))
}

// NewWithSink is New writing to sink.
func NewWithSink(jsonOutput bool, verbosity int, sink zapcore.WriteSyncer) *zap.Logger {
	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, sink, LevelFor(verbosity)))
}
