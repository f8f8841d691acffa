// Package telemetry configures structured logging. Logs go to stderr so
// that stdout carries only measured durations and reports.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("telemetry: unknown log level %q", s)
	}
	return l, nil
}

// NewLogger builds a text or JSON logger writing to w.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("telemetry: unknown log format %q", format)
	}
	return slog.New(h), nil
}

// Init installs a logger built by NewLogger as the slog default.
func Init(w io.Writer, level, format string) (*slog.Logger, error) {
	logger, err := NewLogger(w, level, format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// LogError logs err with its failure kind.
func LogError(logger *slog.Logger, msg, kind string, err error, args ...any) {
	if kind != "" {
		args = append(args, "kind", kind)
	}
	logger.Error(msg, append(args, "error", err)...)
}
