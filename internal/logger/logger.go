// Package logger builds the structured logger shared by the CLI commands.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a text slog.Logger whose level can be changed after construction.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// New returns an info-level logger writing to w.
func New(w io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{Logger: slog.New(h), level: lv}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	return New(io.Discard)
}

// Named returns a child logger tagged with a component name.
func (l *Logger) Named(name string) *slog.Logger {
	return l.Logger.With("component", name)
}

// Level reports the current minimum level.
func (l *Logger) Level() slog.Level { return l.level.Level() }

// SetLevelString parses and sets the logging level.
// Accepts: debug, info, warn/warning, error (case-insensitive).
func (l *Logger) SetLevelString(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l.level.Set(slog.LevelDebug)
	case "", "info":
		l.level.Set(slog.LevelInfo)
	case "warn", "warning":
		l.level.Set(slog.LevelWarn)
	case "error":
		l.level.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}
