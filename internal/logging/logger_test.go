package logging_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"watchlog/internal/logging"
)

func newFileLogger(t *testing.T, format, level string) (*slog.Logger, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := logging.New(logging.Options{
		Format:           format,
		Level:            level,
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	read := func() string {
		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(content)
	}
	return logger, read
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, read := newFileLogger(t, "console", "info")
	logger.Info("message without caller")
	if content := read(); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, read := newFileLogger(t, "console", "debug")
	logger.Info("message with caller")
	if content := read(); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerPrefixesComponent(t *testing.T) {
	logger, read := newFileLogger(t, "console", "info")
	component := logging.NewComponentLogger(logger, "resolver")
	component.Info("ready")
	content := read()
	if !strings.Contains(content, "resolver: ready") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component must not repeat as key=value, got %q", content)
	}
}

func TestJSONLoggerWritesStructuredLines(t *testing.T) {
	logger, read := newFileLogger(t, "json", "info")
	logger.Info("json message", logging.String("k", "v"))
	content := read()
	if !strings.Contains(content, `"level":"info"`) {
		t.Fatalf("expected lowercase level key, got %q", content)
	}
	if !strings.Contains(content, `"msg":"json message"`) {
		t.Fatalf("expected msg key, got %q", content)
	}
	if !strings.Contains(content, `"k":"v"`) {
		t.Fatalf("expected attribute in output, got %q", content)
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	logger, read := newFileLogger(t, "console", "not-a-level")
	logger.Debug("hidden")
	logger.Info("visible")
	content := read()
	if strings.Contains(content, "hidden") {
		t.Fatalf("expected debug suppressed at default level, got %q", content)
	}
	if !strings.Contains(content, "visible") {
		t.Fatalf("expected info line, got %q", content)
	}
}

func TestUnsupportedFormatErrors(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logger, read := newFileLogger(t, "console", "info")
	ctx := logging.WithRunID(context.Background(), "run-42")
	ctx = logging.WithRecordIndex(ctx, 7)

	logging.WithContext(ctx, logger).Info("contextual log")

	content := read()
	if !strings.Contains(content, "run_id=run-42") {
		t.Fatalf("expected run id field, got %q", content)
	}
	if !strings.Contains(content, "record_index=7") {
		t.Fatalf("expected record index field, got %q", content)
	}
}

func TestWithContextNilLoggerReturnsUsable(t *testing.T) {
	logger := logging.WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Info("must not panic")
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logger, read := newFileLogger(t, "console", "info")
	logging.WarnWithContext(logger, "partial data", "episode_unresolved")
	content := read()
	for _, want := range []string{"event_type=episode_unresolved", "error_hint=", "impact="} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got %q", want, content)
		}
	}
}
