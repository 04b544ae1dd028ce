package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Output formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects the handler and level for the process logger.
type Config struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`

	// Output defaults to stderr. Stdout carries the line protocol and must
	// never receive log lines.
	Output io.Writer `koanf:"-"`
}

// New builds a slog.Logger from cfg.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(out, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	default:
		return nil, errors.Errorf("unknown log format: %s", cfg.Format)
	}
}

// ParseLevel converts a level name to a slog.Level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
