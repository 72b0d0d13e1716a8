package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"watchlog/internal/tmdb"
)

type cliTestEnv struct {
	baseDir      string
	configPath   string
	inputPath    string
	outputPath   string
	errorLogPath string
	catalog      *httptest.Server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_READ_ACCESS_TOKEN", "test-token")

	server := newCatalogServer()
	t.Cleanup(server.Close)

	env := &cliTestEnv{
		baseDir:      base,
		inputPath:    filepath.Join(base, "viewing_history.csv"),
		outputPath:   filepath.Join(base, "yamtrack_import.csv"),
		errorLogPath: filepath.Join(base, "errors.log"),
		catalog:      server,
	}

	env.configPath = filepath.Join(homeDir, ".config", "watchlog", "config.toml")
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, env)

	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(
		"[files]\ninput = %q\noutput = %q\nerror_log = %q\n\n[tmdb]\nbase_url = %q\n\n[pacing]\nrequest_delay_ms = 0\nrequest_timeout_seconds = 5\n\n[logging]\nlevel = \"error\"\n",
		env.inputPath,
		env.outputPath,
		env.errorLogPath,
		env.catalog.URL,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newCatalogServer stands in for TMDB: search endpoints answer from a small
// fixture, detail endpoints serve one show with two seasons, and any request
// without the expected bearer token gets a 401.
func newCatalogServer() *httptest.Server {
	prisonBreak := tmdb.Result{ID: 2288, Name: "Prison Break", MediaType: tmdb.MediaTypeTV, FirstAirDate: "2005-08-29"}
	heat := tmdb.Result{ID: 949, Title: "Heat", MediaType: tmdb.MediaTypeMovie, ReleaseDate: "1995-12-15"}

	multi := map[string][]tmdb.Result{
		"prison break": {prisonBreak},
		"heat":         {heat},
	}
	movies := map[string][]tmdb.Result{
		"heat": {heat},
	}
	shows := map[string][]tmdb.Result{
		"prison break": {prisonBreak},
	}

	showDetails := map[string]*tmdb.ShowDetails{
		"/tv/2288": {
			ID:   2288,
			Name: "Prison Break",
			Seasons: []tmdb.Season{
				{ID: 7132, Name: "Season 1", SeasonNumber: 1, EpisodeCount: 22},
				{ID: 7133, Name: "Season 2", SeasonNumber: 2, EpisodeCount: 22},
			},
		},
	}
	seasonDetails := map[string]*tmdb.SeasonDetails{
		"/tv/2288/season/1": {
			ID:           7132,
			Name:         "Season 1",
			SeasonNumber: 1,
			Episodes: []tmdb.Episode{
				{ID: 120925, Name: "Pilot", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2005-08-29"},
			},
		},
		"/tv/2288/season/2": {
			ID:           7133,
			Name:         "Season 2",
			SeasonNumber: 2,
			Episodes: []tmdb.Episode{
				{ID: 121092, Name: "Bluff", SeasonNumber: 2, EpisodeNumber: 6, AirDate: "2006-09-25"},
			},
		},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			writeCatalogStatus(w, http.StatusUnauthorized, "Invalid API key: You must be granted a valid key.")
			return
		}
		query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
		switch r.URL.Path {
		case "/search/multi":
			writeCatalogJSON(w, &tmdb.Response{Page: 1, Results: multi[query], TotalResults: len(multi[query])})
		case "/search/movie":
			writeCatalogJSON(w, &tmdb.Response{Page: 1, Results: movies[query], TotalResults: len(movies[query])})
		case "/search/tv":
			writeCatalogJSON(w, &tmdb.Response{Page: 1, Results: shows[query], TotalResults: len(shows[query])})
		default:
			if details, ok := showDetails[r.URL.Path]; ok {
				writeCatalogJSON(w, details)
				return
			}
			if details, ok := seasonDetails[r.URL.Path]; ok {
				writeCatalogJSON(w, details)
				return
			}
			writeCatalogStatus(w, http.StatusNotFound, "The resource you requested could not be found.")
		}
	}))
}

func writeCatalogJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeCatalogStatus(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"status_code": code, "status_message": message})
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
