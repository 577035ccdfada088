package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"chlog/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHandlerPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	NewComponentLogger(logger, "sorter").Info("organizing files", Int("total", 3))

	line := buf.String()
	if !strings.Contains(line, "sorter: organizing files") {
		t.Errorf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "total=3") {
		t.Errorf("expected attr rendering, got %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn should be emitted: %q", out)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithShow(context.Background(), "gotime")
	ctx = services.WithStage(ctx, "sort")
	WithContext(ctx, logger).Info("stage started")

	out := buf.String()
	if !strings.Contains(out, "show=gotime") || !strings.Contains(out, "stage=sort") {
		t.Errorf("expected context fields, got %q", out)
	}
}

func TestJSONHandlerLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("expected lowercase level key, got %q", buf.String())
	}
}
