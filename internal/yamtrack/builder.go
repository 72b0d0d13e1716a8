package yamtrack

import (
	"time"

	"watchlog/internal/resolve"
)

type seasonKey struct {
	showID int64
	season int
}

// RowCounts breaks down what a build produced, for the run summary.
type RowCounts struct {
	Shows           int
	Seasons         int
	Episodes        int
	Movies          int
	FlaggedEpisodes int
}

// Builder accumulates import rows for one conversion run. It tracks which
// show and season parents have already been emitted so each appears exactly
// once no matter how many episodes land under it.
type Builder struct {
	rows           []Row
	emittedShows   map[int64]struct{}
	emittedSeasons map[seasonKey]struct{}
	counts         RowCounts
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		emittedShows:   make(map[int64]struct{}),
		emittedSeasons: make(map[seasonKey]struct{}),
	}
}

// Add appends the rows one resolved record contributes: a movie row, or an
// episode row preceded by whichever of its show and season parents have not
// been emitted yet. Show and season rows carry the catalog's canonical
// title; the episode row keeps the title the viewer actually watched so a
// flagged row can be checked by hand. The returned slice holds just the rows
// this call appended.
func (b *Builder) Add(profile, episodeTitle string, watchedOn time.Time, match resolve.Match) []Row {
	if match.Kind == resolve.KindMovie {
		row := MovieRow(match.ID, match.Title, watchedOn, profile)
		b.rows = append(b.rows, row)
		b.counts.Movies++
		return []Row{row}
	}

	added := make([]Row, 0, 3)
	if _, seen := b.emittedShows[match.ID]; !seen {
		b.emittedShows[match.ID] = struct{}{}
		added = append(added, ShowRow(match.ID, match.Title, profile))
		b.counts.Shows++
	}
	key := seasonKey{showID: match.ID, season: match.SeasonNumber}
	if _, seen := b.emittedSeasons[key]; !seen {
		b.emittedSeasons[key] = struct{}{}
		added = append(added, SeasonRow(match.ID, match.Title, match.SeasonNumber, profile))
		b.counts.Seasons++
	}
	added = append(added, EpisodeRow(match.ID, episodeTitle, match.SeasonNumber, match.EpisodeNumber, watchedOn, profile))
	b.counts.Episodes++
	if !match.EpisodeResolved() {
		b.counts.FlaggedEpisodes++
	}

	b.rows = append(b.rows, added...)
	return added
}

// Rows returns all accumulated rows in emission order.
func (b *Builder) Rows() []Row {
	return b.rows
}

// Counts reports the per-type row totals accumulated so far.
func (b *Builder) Counts() RowCounts {
	return b.counts
}
