package testsupport

import (
	"path/filepath"
	"testing"

	"watchlog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp file paths per test.
// Pacing is disabled so tests never sleep between catalog calls.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.AccessToken = "test-token"
	cfgVal.Files.Input = filepath.Join(base, "viewing_history.csv")
	cfgVal.Files.Output = filepath.Join(base, "yamtrack_import.csv")
	cfgVal.Files.ErrorLog = filepath.Join(base, "errors.log")
	cfgVal.Pacing.RequestDelayMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAccessToken sets the TMDB access token on the test config.
func WithAccessToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.AccessToken = token
	}
}

// WithBaseURL points the TMDB client at the supplied server.
func WithBaseURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = baseURL
	}
}

// WithDedupeRewatches toggles rewatch deduplication on the test config.
func WithDedupeRewatches(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Convert.DedupeRewatches = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Files.Input)
}
