package yamtrack

import (
	"strconv"
	"time"
)

// Media type labels used by the import schema.
const (
	MediaTypeShow    = "tv"
	MediaTypeSeason  = "season"
	MediaTypeEpisode = "episode"
	MediaTypeMovie   = "movie"
)

// Tracking statuses. Parent rows stay open so the tracker keeps counting
// future episodes against them; watched leaves are done.
const (
	StatusInProgress = "In progress"
	StatusCompleted  = "Completed"
)

// Source names the catalog every media id in the file refers to.
const Source = "tmdb"

// endDateClock is the fixed clock suffix appended to every end date. The
// export only carries calendar dates; the importer wants a timestamp.
const endDateClock = "14:14:00+01:00"

// UnresolvedEpisodeNote marks an episode row whose episode number could not
// be determined from the catalog.
const UnresolvedEpisodeNote = "episode not matched; verify manually"

// Row is one line of the import file. Zero-valued optional fields render as
// empty columns.
type Row struct {
	MediaID       int64
	MediaType     string
	Title         string
	SeasonNumber  int
	EpisodeNumber int
	Status        string
	Notes         string
	EndDate       string
	Profile       string
}

// Header returns the import file's column header.
func Header() []string {
	return []string{
		"media_id", "source", "media_type", "title", "image", "season_number",
		"episode_number", "score", "status", "notes", "start_date", "end_date",
		"progress", "profile",
	}
}

// EndDate formats a watch date for the end_date column: the calendar date
// plus the fixed clock suffix.
func EndDate(watchedOn time.Time) string {
	return watchedOn.Format("2006-01-02") + " " + endDateClock
}

// ShowRow opens a show's hierarchy. Emitted once per show.
func ShowRow(id int64, title, profile string) Row {
	return Row{
		MediaID:   id,
		MediaType: MediaTypeShow,
		Title:     title,
		Status:    StatusInProgress,
		Profile:   profile,
	}
}

// SeasonRow opens one season under its show. Emitted once per show season.
func SeasonRow(id int64, title string, seasonNumber int, profile string) Row {
	return Row{
		MediaID:      id,
		MediaType:    MediaTypeSeason,
		Title:        title,
		SeasonNumber: seasonNumber,
		Status:       StatusInProgress,
		Profile:      profile,
	}
}

// EpisodeRow records one watched episode. An episodeNumber of zero means the
// episode could not be pinned down; the row is flagged for manual review
// instead of being dropped.
func EpisodeRow(id int64, title string, seasonNumber, episodeNumber int, watchedOn time.Time, profile string) Row {
	row := Row{
		MediaID:       id,
		MediaType:     MediaTypeEpisode,
		Title:         title,
		SeasonNumber:  seasonNumber,
		EpisodeNumber: episodeNumber,
		Status:        StatusCompleted,
		EndDate:       EndDate(watchedOn),
		Profile:       profile,
	}
	if episodeNumber <= 0 {
		row.Notes = UnresolvedEpisodeNote
	}
	return row
}

// MovieRow records one watched movie.
func MovieRow(id int64, title string, watchedOn time.Time, profile string) Row {
	return Row{
		MediaID:   id,
		MediaType: MediaTypeMovie,
		Title:     title,
		Status:    StatusCompleted,
		EndDate:   EndDate(watchedOn),
		Profile:   profile,
	}
}

// fields renders the row in header column order. The season number column is
// populated for season and episode rows only, where zero is a real value
// (the specials season); the episode number column stays empty when the
// episode is unresolved.
func (r Row) fields() []string {
	season := ""
	if r.MediaType == MediaTypeSeason || r.MediaType == MediaTypeEpisode {
		season = strconv.Itoa(r.SeasonNumber)
	}
	episode := ""
	if r.EpisodeNumber > 0 {
		episode = strconv.Itoa(r.EpisodeNumber)
	}
	return []string{
		strconv.FormatInt(r.MediaID, 10),
		Source,
		r.MediaType,
		r.Title,
		"", // image
		season,
		episode,
		"", // score
		r.Status,
		r.Notes,
		"", // start_date
		r.EndDate,
		"", // progress
		r.Profile,
	}
}
