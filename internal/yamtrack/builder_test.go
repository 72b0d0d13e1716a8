package yamtrack_test

import (
	"testing"
	"time"

	"watchlog/internal/resolve"
	"watchlog/internal/yamtrack"
)

func TestBuilderEmitsParentsOnce(t *testing.T) {
	builder := yamtrack.NewBuilder()
	watched := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	base := resolve.Match{Kind: resolve.KindShow, ID: 2288, Title: "Prison Break"}

	first := base
	first.SeasonNumber, first.EpisodeNumber = 2, 6
	added := builder.Add("alex", "Bluff", watched, first)
	if len(added) != 3 {
		t.Fatalf("first episode added %d rows, want show+season+episode", len(added))
	}
	for i, want := range []string{yamtrack.MediaTypeShow, yamtrack.MediaTypeSeason, yamtrack.MediaTypeEpisode} {
		if added[i].MediaType != want {
			t.Fatalf("row %d type = %s, want %s", i, added[i].MediaType, want)
		}
	}

	second := base
	second.SeasonNumber, second.EpisodeNumber = 2, 7
	added = builder.Add("alex", "Chicago", watched.AddDate(0, 0, 1), second)
	if len(added) != 1 || added[0].MediaType != yamtrack.MediaTypeEpisode {
		t.Fatalf("repeat season added %+v, want a single episode row", added)
	}

	third := base
	third.SeasonNumber, third.EpisodeNumber = 3, 1
	added = builder.Add("alex", "Orientacion", watched.AddDate(0, 0, 2), third)
	if len(added) != 2 {
		t.Fatalf("new season added %d rows, want season+episode", len(added))
	}
	if added[0].MediaType != yamtrack.MediaTypeSeason || added[0].SeasonNumber != 3 {
		t.Fatalf("expected season 3 row first, got %+v", added[0])
	}

	rows := builder.Rows()
	if len(rows) != 6 {
		t.Fatalf("total rows = %d, want 6", len(rows))
	}
	counts := builder.Counts()
	if counts.Shows != 1 || counts.Seasons != 2 || counts.Episodes != 3 || counts.Movies != 0 {
		t.Fatalf("counts = %+v, want 1 show, 2 seasons, 3 episodes", counts)
	}
}

func TestBuilderTitlePolicy(t *testing.T) {
	builder := yamtrack.NewBuilder()
	match := resolve.Match{Kind: resolve.KindShow, ID: 136315, Title: "The Bear", SeasonNumber: 2, EpisodeNumber: 3}

	added := builder.Add("sam", "Honeydew", time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), match)
	if added[0].Title != "The Bear" || added[1].Title != "The Bear" {
		t.Fatalf("parent rows should carry the catalog title, got %q and %q", added[0].Title, added[1].Title)
	}
	if added[2].Title != "Honeydew" {
		t.Fatalf("episode row should carry the watched title, got %q", added[2].Title)
	}
}

func TestBuilderMovieRow(t *testing.T) {
	builder := yamtrack.NewBuilder()
	watched := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	added := builder.Add("alex", "Heat", watched, resolve.Match{Kind: resolve.KindMovie, ID: 949, Title: "Heat"})
	if len(added) != 1 {
		t.Fatalf("movie added %d rows, want 1", len(added))
	}
	row := added[0]
	if row.MediaType != yamtrack.MediaTypeMovie || row.Status != yamtrack.StatusCompleted {
		t.Fatalf("movie row = %+v", row)
	}
	if row.EndDate != "2024-01-15 14:14:00+01:00" {
		t.Fatalf("end date = %q", row.EndDate)
	}
	if counts := builder.Counts(); counts.Movies != 1 {
		t.Fatalf("counts = %+v, want 1 movie", counts)
	}
}

func TestBuilderFlagsUnresolvedEpisode(t *testing.T) {
	builder := yamtrack.NewBuilder()
	match := resolve.Match{Kind: resolve.KindShow, ID: 136315, Title: "The Bear", SeasonNumber: 2}

	added := builder.Add("alex", "Mystery Course", time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC), match)
	episode := added[len(added)-1]
	if episode.EpisodeNumber != 0 {
		t.Fatalf("episode number = %d, want 0", episode.EpisodeNumber)
	}
	if episode.Notes != yamtrack.UnresolvedEpisodeNote {
		t.Fatalf("notes = %q, want the review flag", episode.Notes)
	}
	if counts := builder.Counts(); counts.FlaggedEpisodes != 1 || counts.Episodes != 1 {
		t.Fatalf("counts = %+v, want 1 flagged of 1 episode", counts)
	}
}
