// Package logging builds the zap logger used across dealgrid.
package logging

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownFormat is returned for formats other than "json" and "console".
var ErrUnknownFormat = errors.New("unknown log format")

// New returns a logger writing to w.
// level: "debug", "info", "warn", "error" (unknown values fall back to "info")
// format: "json" or "console".
func New(level, format string, w io.Writer) (*zap.Logger, error) {
	var enc zapcore.Encoder

	switch format {
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	case "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(Level(level)))

	return zap.New(core), nil
}

// Level maps a config level name to a zap level.
func Level(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
