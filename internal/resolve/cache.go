package resolve

import (
	"sync"

	"watchlog/internal/tmdb"
)

type identityKey struct {
	preferred Kind
	title     string
}

type episodeListKey struct {
	showID int64
	season int
}

// Stats reports cache effectiveness for the run summary.
type Stats struct {
	Hits   int
	Misses int
}

// Cache memoizes catalog lookups for the duration of one conversion run:
// search identities keyed by kind preference and folded title, season lists
// keyed by show, and episode lists keyed by show and season. Only successful
// results are ever stored, so a transient service failure never poisons
// later lookups of the same title. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	identities map[identityKey]Match
	seasons    map[int64][]tmdb.Season
	episodes   map[episodeListKey][]tmdb.Episode
	hits       int
	misses     int
}

// NewCache returns an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{
		identities: make(map[identityKey]Match),
		seasons:    make(map[int64][]tmdb.Season),
		episodes:   make(map[episodeListKey][]tmdb.Episode),
	}
}

// Identity returns the cached search result for a kind preference and folded
// clean title.
func (c *Cache) Identity(preferred Kind, foldedTitle string) (Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	match, ok := c.identities[identityKey{preferred, foldedTitle}]
	c.count(ok)
	return match, ok
}

// StoreIdentity records a successful search result.
func (c *Cache) StoreIdentity(preferred Kind, foldedTitle string, match Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identities[identityKey{preferred, foldedTitle}] = match
}

// Seasons returns the cached season list for a show.
func (c *Cache) Seasons(showID int64) ([]tmdb.Season, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	seasons, ok := c.seasons[showID]
	c.count(ok)
	return seasons, ok
}

// StoreSeasons records a show's season list.
func (c *Cache) StoreSeasons(showID int64, seasons []tmdb.Season) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seasons[showID] = seasons
}

// Episodes returns the cached episode list for a show's season.
func (c *Cache) Episodes(showID int64, seasonNumber int) ([]tmdb.Episode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	episodes, ok := c.episodes[episodeListKey{showID, seasonNumber}]
	c.count(ok)
	return episodes, ok
}

// StoreEpisodes records a season's episode list.
func (c *Cache) StoreEpisodes(showID int64, seasonNumber int, episodes []tmdb.Episode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.episodes[episodeListKey{showID, seasonNumber}] = episodes
}

// Stats returns the hit and miss counters accumulated so far.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses}
}

func (c *Cache) count(hit bool) {
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}
