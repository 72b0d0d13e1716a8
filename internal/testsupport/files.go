package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// HistoryHeader mirrors the column header row of a viewing-history export.
const HistoryHeader = "profile;program title;season title;date"

// WriteFile writes content to path, creating parent directories first.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteHistory writes a viewing-history export composed of the standard
// header plus the provided semicolon-delimited rows.
func WriteHistory(t testing.TB, path string, rows ...string) {
	t.Helper()

	lines := append([]string{HistoryHeader}, rows...)
	WriteFile(t, path, strings.Join(lines, "\n")+"\n")
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
