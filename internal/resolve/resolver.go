package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"watchlog/internal/logging"
	"watchlog/internal/titles"
	"watchlog/internal/tmdb"
)

// Request carries the fields of one viewing record the resolver needs. A
// non-empty SeasonTitle classifies the record as a TV episode and doubles as
// the show search key; otherwise ProgramTitle is treated as a movie title.
type Request struct {
	ProgramTitle string
	SeasonTitle  string
	WatchedOn    time.Time
}

// Match is the resolved catalog identity for one viewing record. For show
// matches SeasonNumber is always set; EpisodeNumber is zero when the
// specific episode could not be pinned down.
type Match struct {
	Kind          Kind
	ID            int64
	Title         string
	SeasonNumber  int
	EpisodeNumber int
}

// EpisodeResolved reports whether a show match carries a definite episode.
func (m Match) EpisodeResolved() bool {
	return m.EpisodeNumber > 0
}

// An episode whose air date lies within this window of the watch date is
// accepted as a match when titles fail to line up.
const airDateTolerance = 24 * time.Hour

// Resolver resolves titles against the catalog, consulting the run cache
// before the network and pacing every outbound call.
type Resolver struct {
	catalog Catalog
	cache   *Cache
	pacer   *rate.Limiter
	logger  *slog.Logger
}

// New constructs a Resolver. A nil cache gets a fresh run-scoped cache; a
// nil pacer disables pacing (tests and diagnostics).
func New(catalog Catalog, cache *Cache, pacer *rate.Limiter, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		catalog: catalog,
		cache:   cache,
		pacer:   pacer,
		logger:  logging.NewComponentLogger(logger, "resolver"),
	}
}

// Cache exposes the resolver's run cache for summary reporting.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve maps one viewing record to a catalog identity. Records with a
// season title prefer a show match, the rest prefer a movie match; either
// way the other kind serves as a fallback because the export's column
// layout is a hint, not a guarantee.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Match, error) {
	if strings.TrimSpace(req.ProgramTitle) == "" {
		return Match{}, Wrap(ErrNotFound, "classify record", "program title is empty", nil)
	}
	if strings.TrimSpace(req.SeasonTitle) != "" {
		return r.resolveEpisode(ctx, req)
	}
	return r.resolveMovie(ctx, req)
}

func (r *Resolver) resolveEpisode(ctx context.Context, req Request) (Match, error) {
	logger := logging.WithContext(ctx, r.logger)
	searchKey := titles.Normalize(req.SeasonTitle)

	ident, err := r.identity(ctx, KindShow, searchKey)
	if err != nil {
		return Match{}, err
	}
	if ident.Kind == KindMovie {
		// The catalog knows no show under this name; the movie result
		// stands in and the season and episode steps are skipped.
		logger.Info("episode record resolved as movie",
			logging.Args(logging.DecisionAttrs("kind_disambiguation", "movie", "no show candidates")...)...,
		)
		return ident, nil
	}
	return r.resolveShowMatch(ctx, ident, req)
}

func (r *Resolver) resolveMovie(ctx context.Context, req Request) (Match, error) {
	logger := logging.WithContext(ctx, r.logger)
	searchKey := titles.Normalize(req.ProgramTitle)

	ident, err := r.identity(ctx, KindMovie, searchKey)
	if err != nil {
		return Match{}, err
	}
	if ident.Kind == KindMovie {
		return ident, nil
	}

	// The catalog only knows a show under this title. Without a season
	// signal the record can still resolve if one of the show's episodes
	// carries the watched title.
	seasons, err := r.seasonList(ctx, ident.ID)
	if err != nil {
		return Match{}, err
	}
	episode, found, err := r.scanForEpisode(ctx, ident.ID, seasons, req.ProgramTitle)
	if err != nil {
		return Match{}, err
	}
	if !found {
		return Match{}, Wrap(ErrNotFound, "movie lookup",
			fmt.Sprintf("%q only matches show %q and none of its episodes carry that title", req.ProgramTitle, ident.Title), nil)
	}
	logger.Info("movie record resolved as episode",
		logging.Args(logging.DecisionAttrs("kind_disambiguation", "tv", "episode title found in show")...)...,
	)
	ident.SeasonNumber = episode.SeasonNumber
	ident.EpisodeNumber = episode.EpisodeNumber
	return ident, nil
}

// resolveShowMatch runs the season and episode steps for a confirmed show
// identity.
func (r *Resolver) resolveShowMatch(ctx context.Context, ident Match, req Request) (Match, error) {
	logger := logging.WithContext(ctx, r.logger)

	seasons, err := r.seasonList(ctx, ident.ID)
	if err != nil {
		return Match{}, err
	}

	match := ident
	season, found, how := matchSeason(seasons, req.SeasonTitle)
	if !found {
		// Last resort: walk every season looking for the watched episode
		// by title. A hit fixes season and episode in one step.
		episode, ok, err := r.scanForEpisode(ctx, ident.ID, seasons, req.ProgramTitle)
		if err != nil {
			return Match{}, err
		}
		if !ok {
			return Match{}, Wrap(ErrSeasonNotFound, "season lookup",
				fmt.Sprintf("no season of %q matches %q and no episode is titled %q", ident.Title, req.SeasonTitle, req.ProgramTitle), nil)
		}
		logger.Debug("season fixed by episode scan",
			logging.Args(logging.DecisionAttrs("season_match", "episode_scan", "episode title located")...)...,
		)
		match.SeasonNumber = episode.SeasonNumber
		match.EpisodeNumber = episode.EpisodeNumber
		return match, nil
	}

	match.SeasonNumber = season.SeasonNumber
	logger.Debug("season matched",
		logging.Args(append(logging.DecisionAttrs("season_match", how, "season list comparison"),
			logging.Int("season_number", season.SeasonNumber))...)...,
	)

	episodes, err := r.episodeList(ctx, ident.ID, match.SeasonNumber)
	if err != nil {
		return Match{}, err
	}
	if episode, ok := episodeByTitle(episodes, req.ProgramTitle); ok {
		match.EpisodeNumber = episode.EpisodeNumber
		return match, nil
	}
	if episode, ok := episodeByAirDate(episodes, req.WatchedOn); ok {
		logger.Debug("episode matched by air date",
			logging.Args(append(logging.DecisionAttrs("episode_match", "air_date", "no title match"),
				logging.Int("episode_number", episode.EpisodeNumber))...)...,
		)
		match.EpisodeNumber = episode.EpisodeNumber
		return match, nil
	}

	// Partial success: show and season stand, only the episode needs a
	// human. The caller flags the row instead of dropping the record.
	logging.WarnWithContext(logger, "episode not matched", "episode_unresolved",
		logging.String(logging.FieldTitle, req.ProgramTitle),
		logging.Int64("show_id", ident.ID),
		logging.Int("season_number", match.SeasonNumber),
		logging.String(logging.FieldErrorHint, "verify the episode manually in the import file"),
		logging.String(logging.FieldImpact, "episode row emitted without an episode number"),
	)
	return match, nil
}

// ResolveMovie forces a movie-only search, bypassing kind disambiguation.
// Used by the resolve diagnostic command.
func (r *Resolver) ResolveMovie(ctx context.Context, programTitle string) (Match, error) {
	query := titles.Normalize(programTitle)
	if query == "" {
		return Match{}, Wrap(ErrNotFound, "movie search", "title is empty", nil)
	}
	if err := r.pace(ctx); err != nil {
		return Match{}, err
	}
	resp, err := r.catalog.SearchMovie(ctx, query)
	if err != nil {
		return Match{}, r.classify("movie search", err)
	}
	if len(resp.Results) == 0 {
		return Match{}, Wrap(ErrNotFound, "movie search", fmt.Sprintf("no movie in the catalog matches %q", query), nil)
	}
	first := resp.Results[0]
	return Match{Kind: KindMovie, ID: first.ID, Title: first.DisplayTitle()}, nil
}

// ResolveShow forces a TV-only search and then runs the regular season and
// episode steps. Without a season title the show identity is returned as-is
// unless the watched title can be located by scanning the episode lists.
// Used by the resolve diagnostic command.
func (r *Resolver) ResolveShow(ctx context.Context, req Request) (Match, error) {
	query := titles.Normalize(req.SeasonTitle)
	if query == "" {
		query = titles.Normalize(req.ProgramTitle)
	}
	if query == "" {
		return Match{}, Wrap(ErrNotFound, "tv search", "title is empty", nil)
	}
	if err := r.pace(ctx); err != nil {
		return Match{}, err
	}
	resp, err := r.catalog.SearchTV(ctx, query)
	if err != nil {
		return Match{}, r.classify("tv search", err)
	}
	if len(resp.Results) == 0 {
		return Match{}, Wrap(ErrNotFound, "tv search", fmt.Sprintf("no show in the catalog matches %q", query), nil)
	}
	first := resp.Results[0]
	ident := Match{Kind: KindShow, ID: first.ID, Title: first.DisplayTitle()}

	if strings.TrimSpace(req.SeasonTitle) != "" {
		return r.resolveShowMatch(ctx, ident, req)
	}

	seasons, err := r.seasonList(ctx, ident.ID)
	if err != nil {
		return Match{}, err
	}
	if episode, found, err := r.scanForEpisode(ctx, ident.ID, seasons, req.ProgramTitle); err != nil {
		return Match{}, err
	} else if found {
		ident.SeasonNumber = episode.SeasonNumber
		ident.EpisodeNumber = episode.EpisodeNumber
	}
	return ident, nil
}

// identity answers "what does this title name" with one multi search. The
// first candidate of the preferred kind wins in service ranking order; when
// that kind has no candidates at all, the best candidate of the other kind
// is taken instead. Successful answers are cached per kind preference.
func (r *Resolver) identity(ctx context.Context, preferred Kind, query string) (Match, error) {
	folded := titles.Fold(query)
	if match, ok := r.cache.Identity(preferred, folded); ok {
		return match, nil
	}

	if err := r.pace(ctx); err != nil {
		return Match{}, err
	}
	resp, err := r.catalog.SearchMulti(ctx, query)
	if err != nil {
		return Match{}, r.classify("multi search", err)
	}

	var preferredHit, otherHit *tmdb.Result
	for i := range resp.Results {
		result := &resp.Results[i]
		kind, ok := resultKind(result)
		if !ok {
			continue
		}
		if kind == preferred {
			preferredHit = result
			break
		}
		if otherHit == nil {
			otherHit = result
		}
	}

	chosen := preferredHit
	decision := "preferred_kind"
	if chosen == nil {
		chosen = otherHit
		decision = "fallback_kind"
	}
	if chosen == nil {
		return Match{}, Wrap(ErrNotFound, "multi search", fmt.Sprintf("no movie or show in the catalog matches %q", query), nil)
	}

	kind, _ := resultKind(chosen)
	match := Match{Kind: kind, ID: chosen.ID, Title: chosen.DisplayTitle()}
	r.cache.StoreIdentity(preferred, folded, match)

	logging.WithContext(ctx, r.logger).Debug("identity selected",
		logging.Args(append(logging.DecisionAttrs("identity_selection", decision, "multi search ranking"),
			logging.String(logging.FieldTitle, query),
			logging.String(logging.FieldKind, string(kind)),
			logging.Int64("catalog_id", match.ID))...)...,
	)
	return match, nil
}

func resultKind(result *tmdb.Result) (Kind, bool) {
	switch result.MediaType {
	case tmdb.MediaTypeMovie:
		return KindMovie, true
	case tmdb.MediaTypeTV:
		return KindShow, true
	default:
		return "", false
	}
}

// seasonList fetches a show's seasons, ascending, through the cache.
func (r *Resolver) seasonList(ctx context.Context, showID int64) ([]tmdb.Season, error) {
	if seasons, ok := r.cache.Seasons(showID); ok {
		return seasons, nil
	}
	if err := r.pace(ctx); err != nil {
		return nil, err
	}
	details, err := r.catalog.GetShowDetails(ctx, showID)
	if err != nil {
		return nil, r.classify("tv details", err)
	}
	seasons := make([]tmdb.Season, len(details.Seasons))
	copy(seasons, details.Seasons)
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].SeasonNumber < seasons[j].SeasonNumber
	})
	r.cache.StoreSeasons(showID, seasons)
	return seasons, nil
}

// episodeList fetches a season's episodes through the cache.
func (r *Resolver) episodeList(ctx context.Context, showID int64, seasonNumber int) ([]tmdb.Episode, error) {
	if episodes, ok := r.cache.Episodes(showID, seasonNumber); ok {
		return episodes, nil
	}
	if err := r.pace(ctx); err != nil {
		return nil, err
	}
	details, err := r.catalog.GetSeasonDetails(ctx, showID, seasonNumber)
	if err != nil {
		return nil, r.classify("season details", err)
	}
	r.cache.StoreEpisodes(showID, seasonNumber, details.Episodes)
	return details.Episodes, nil
}

// scanForEpisode walks the show's seasons in ascending order looking for an
// episode whose folded title equals the folded program title. The first hit
// wins, matching how a viewer's export lists an episode exactly once.
func (r *Resolver) scanForEpisode(ctx context.Context, showID int64, seasons []tmdb.Season, programTitle string) (tmdb.Episode, bool, error) {
	folded := titles.Fold(programTitle)
	if folded == "" {
		return tmdb.Episode{}, false, nil
	}
	for _, season := range seasons {
		episodes, err := r.episodeList(ctx, showID, season.SeasonNumber)
		if err != nil {
			return tmdb.Episode{}, false, err
		}
		for _, episode := range episodes {
			if titles.Fold(episode.Name) == folded {
				return episode, true, nil
			}
		}
	}
	return tmdb.Episode{}, false, nil
}

// matchSeason picks the season a raw export season title names: an explicit
// qualifier number wins, then exact folded-name equality. how labels the
// decision for logging.
func matchSeason(seasons []tmdb.Season, seasonTitle string) (tmdb.Season, bool, string) {
	if _, number, ok := titles.SplitSeason(seasonTitle); ok {
		for _, season := range seasons {
			if season.SeasonNumber == number {
				return season, true, "qualifier_number"
			}
		}
	}
	folded := titles.Fold(seasonTitle)
	for _, season := range seasons {
		if titles.Fold(season.Name) == folded {
			return season, true, "name_equality"
		}
	}
	return tmdb.Season{}, false, ""
}

func episodeByTitle(episodes []tmdb.Episode, programTitle string) (tmdb.Episode, bool) {
	folded := titles.Fold(programTitle)
	if folded == "" {
		return tmdb.Episode{}, false
	}
	for _, episode := range episodes {
		if titles.Fold(episode.Name) == folded {
			return episode, true
		}
	}
	return tmdb.Episode{}, false
}

// episodeByAirDate accepts an episode only when it is the unique closest one
// within the tolerance window; two episodes airing equally close (a same-day
// double feature) stay ambiguous.
func episodeByAirDate(episodes []tmdb.Episode, watchedOn time.Time) (tmdb.Episode, bool) {
	if watchedOn.IsZero() {
		return tmdb.Episode{}, false
	}
	var best tmdb.Episode
	bestDelta := time.Duration(-1)
	bestCount := 0
	for _, episode := range episodes {
		air, err := time.Parse("2006-01-02", strings.TrimSpace(episode.AirDate))
		if err != nil {
			continue
		}
		delta := watchedOn.Sub(air)
		if delta < 0 {
			delta = -delta
		}
		if delta > airDateTolerance {
			continue
		}
		switch {
		case bestDelta < 0 || delta < bestDelta:
			best = episode
			bestDelta = delta
			bestCount = 1
		case delta == bestDelta:
			bestCount++
		}
	}
	if bestCount != 1 {
		return tmdb.Episode{}, false
	}
	return best, true
}

func (r *Resolver) pace(ctx context.Context) error {
	if r.pacer == nil {
		return nil
	}
	return r.pacer.Wait(ctx)
}

// classify turns a raw catalog error into the run taxonomy: credential
// rejections are fatal, everything else is a service failure the run can
// log and skip.
func (r *Resolver) classify(operation string, err error) error {
	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) && statusErr.Unauthorized() {
		return Wrap(ErrAuth, operation, "catalog rejected the access token", err)
	}
	return Wrap(ErrService, operation, "catalog request failed", err)
}
