package logutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace)

	logger.Log(t.Context(), LevelTrace, "resolved config", "kind", "alfred")

	out := buf.String()
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("expected TRACE level, got %q", out)
	}
	if !strings.Contains(out, "source=logutil_test.go:") {
		t.Errorf("expected base file name in source, got %q", out)
	}
	if !strings.Contains(out, "kind=alfred") {
		t.Errorf("expected attributes, got %q", out)
	}
}

func TestTraceDisabled(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	slog.SetDefault(NewLogger(&buf, slog.LevelDebug))
	Trace("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output at debug level, got %q", buf.String())
	}

	slog.SetDefault(NewLogger(&buf, LevelTrace))
	Trace("visible", "n", 1)
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Errorf("expected trace output, got %q", buf.String())
	}
}
