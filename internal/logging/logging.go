// Package logging configures the process-wide slog default.
//
// stdout carries the MCP transport, so handlers write to stderr unless a
// writer is supplied.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the global slog default with the given level and format
// and returns the new default. Format is "json" or anything else for text.
func Init(level slog.Level, format string, w ...io.Writer) *slog.Logger {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

// ForCall scopes a logger to one tool invocation.
func ForCall(l *slog.Logger, tool, callID string) *slog.Logger {
	return l.With(slog.String("tool", tool), slog.String("call_id", callID))
}
