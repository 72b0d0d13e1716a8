package yamtrack_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"watchlog/internal/yamtrack"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "yamtrack_import.csv")
	watched := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	rows := []yamtrack.Row{
		yamtrack.ShowRow(2288, "Prison Break", "alex"),
		yamtrack.SeasonRow(2288, "Prison Break", 2, "alex"),
		yamtrack.EpisodeRow(2288, "Bluff", 2, 6, watched, "alex"),
		yamtrack.MovieRow(949, "Heat", watched, "alex"),
	}

	if err := yamtrack.WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("output has %d rows, want header + 4", len(records))
	}
	if !reflect.DeepEqual(records[0], yamtrack.Header()) {
		t.Fatalf("header = %v", records[0])
	}

	episode := records[3]
	want := []string{"2288", "tmdb", "episode", "Bluff", "", "2", "6", "", "Completed", "", "", "2024-03-09 14:14:00+01:00", "", "alex"}
	if !reflect.DeepEqual(episode, want) {
		t.Fatalf("episode row = %v, want %v", episode, want)
	}

	movie := records[4]
	if movie[2] != "movie" || movie[5] != "" || movie[6] != "" {
		t.Fatalf("movie row should leave season and episode empty, got %v", movie)
	}
	show := records[1]
	if show[8] != yamtrack.StatusInProgress || show[11] != "" {
		t.Fatalf("show row should stay in progress without an end date, got %v", show)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file %s left behind", entry.Name())
		}
	}
}

func TestWriteFileSpecialsAndUnresolved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yamtrack_import.csv")
	watched := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	rows := []yamtrack.Row{
		yamtrack.EpisodeRow(2288, "Behind the Walls", 0, 1, watched, "alex"),
		yamtrack.EpisodeRow(2288, "Mystery Course", 2, 0, watched, "alex"),
	}

	if err := yamtrack.WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	specials := records[1]
	if specials[5] != "0" || specials[6] != "1" {
		t.Fatalf("specials row should keep season 0, got %v", specials)
	}
	flagged := records[2]
	if flagged[6] != "" {
		t.Fatalf("unresolved episode number should render empty, got %q", flagged[6])
	}
	if flagged[9] != yamtrack.UnresolvedEpisodeNote {
		t.Fatalf("unresolved episode notes = %q", flagged[9])
	}
}
