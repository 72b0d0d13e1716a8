package convert

import "time"

// Summary reports what one conversion run did.
type Summary struct {
	RunID           string
	InputRecords    int
	Deduped         int
	ShowRows        int
	SeasonRows      int
	EpisodeRows     int
	MovieRows       int
	FlaggedEpisodes int
	Failures        map[string]int
	CacheHits       int
	CacheMisses     int
	Elapsed         time.Duration
	OutputPath      string
	ErrorLogPath    string
	DryRun          bool
}

// TotalRows returns the number of output rows across all row types.
func (s *Summary) TotalRows() int {
	return s.ShowRows + s.SeasonRows + s.EpisodeRows + s.MovieRows
}

// FailureCount returns the number of records that produced an error-log
// entry instead of output rows.
func (s *Summary) FailureCount() int {
	total := 0
	for _, n := range s.Failures {
		total += n
	}
	return total
}
