package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "debug msg", "k", "v")
	log.Info(ctx, "info msg")
	log.Warn(ctx, "warn msg")
	log.Error(ctx, "error msg")

	out := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", "k=v"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("component", "storage")
	child.Info(context.Background(), "hello")

	out := buf.String()
	if !strings.Contains(out, "component=storage") {
		t.Fatalf("child logger did not carry bound fields:\n%s", out)
	}

	buf.Reset()
	log.Info(context.Background(), "parent")
	if strings.Contains(buf.String(), "component=storage") {
		t.Fatalf("parent logger must not carry child fields")
	}
}
