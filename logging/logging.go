// Package logging builds the process logger: a human-readable console
// writer, optionally teed into a size-rotated JSON file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `json:"level" yaml:"level"`
	Console    bool   `json:"console" yaml:"console"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	NoColor    bool   `json:"no_color,omitempty" yaml:"no_color,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Console:    true,
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}
}

// New returns a logger writing to out (stderr when nil) and, if cfg.File is
// set, to a rotating file.
func New(cfg Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.NoColor,
		})
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   true,
			})
		}
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps debug|info|warn|error onto zerolog levels; anything
// else is info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func WithSymbol(logger zerolog.Logger, symbol string) zerolog.Logger {
	return logger.With().Str("symbol", symbol).Logger()
}

func WithExecution(logger zerolog.Logger, execID string) zerolog.Logger {
	return logger.With().Str("exec_id", execID).Logger()
}

// LogAttempt records one order submission under a fill mode.
func LogAttempt(logger zerolog.Logger, seq int, fillMode string, retcode int, comment string, accepted bool) {
	ev := logger.Info()
	if !accepted {
		ev = logger.Warn()
	}
	ev.Int("attempt", seq).
		Str("fill_mode", fillMode).
		Int("retcode", retcode).
		Str("comment", comment).
		Bool("accepted", accepted).
		Msg("order attempt")
}

func LogOutcome(logger zerolog.Logger, filled bool, fillMode, orderID, reason string, attempts int) {
	if filled {
		logger.Info().
			Str("fill_mode", fillMode).
			Str("order_id", orderID).
			Int("attempts", attempts).
			Msg("order filled")
		return
	}
	logger.Error().
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("order not filled")
}
