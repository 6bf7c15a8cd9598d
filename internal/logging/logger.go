// Package logging defines the structured-logging interface used across the
// client, with slog and zap backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request finished", "path", path, "status", status)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported backends.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger writing to w with the given backend and level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func New(backend, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", BackendSlog:
		return NewSlogTextLogger(w, level), nil
	case BackendZap:
		return NewZapLoggerTo(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogTextLogger(io.Discard, "error")
}
