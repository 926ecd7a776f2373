// Package logging builds the logr.Logger used by the command and the app
// pipeline. zap does the encoding; zapr adapts it to logr.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V().
const (
	DEBUG = 1
	TRACE = 2
)

var base = logr.Discard()

// Log returns the process-wide logger set by SetLogger, NewTestLogger or
// Discard when neither has been called.
func Log() logr.Logger { return base }

// SetLogger replaces the process-wide logger.
func SetLogger(l logr.Logger) { base = l }

// New builds a zap-backed logger. level is one of debug, info, warn, error;
// format is console or json.
func New(level, format string) (logr.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return logr.Discard(), fmt.Errorf("unsupported log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("build zap logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

// NewTestLogger installs a development logger that writes at debug level
// and returns it.
func NewTestLogger() logr.Logger {
	zl, err := zap.NewDevelopment()
	if err != nil {
		SetLogger(logr.Discard())
		return base
	}
	SetLogger(zapr.NewLogger(zl))
	return base
}

// parseLevel maps a level name to zap. debug enables V(DEBUG) and V(TRACE) output.
func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level %q", level)
	}
}
