// Package logutil - slog-Logger mit Trace-Level
package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"
)

// LevelTrace liegt unter Debug und wird mit GROLP_DEBUG=2 aktiviert
const LevelTrace slog.Level = -8

// NewLogger erstellt einen Text-Logger, der nur den Dateinamen der Quelle ausgibt
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				if attr.Value.Any().(slog.Level) == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	}))
}

// Trace loggt auf LevelTrace mit dem Aufrufer als Quelle
func Trace(msg string, args ...any) {
	TraceContext(context.Background(), msg, args...)
}

// TraceContext loggt auf LevelTrace mit Kontext
func TraceContext(ctx context.Context, msg string, args ...any) {
	logger := slog.Default()
	if !logger.Enabled(ctx, LevelTrace) {
		return
	}

	var pcs [1]uintptr
	// Callers, Trace/TraceContext ueberspringen
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), LevelTrace, msg, pcs[0])
	r.Add(args...)
	_ = logger.Handler().Handle(ctx, r)
}
