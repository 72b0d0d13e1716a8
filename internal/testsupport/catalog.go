package testsupport

import (
	"context"
	"net/http"
	"sync"

	"watchlog/internal/tmdb"
)

// StubCatalog is an in-memory catalog backed by canned payloads keyed by
// search query or show ID. Method calls are counted so tests can assert how
// many requests a resolver actually issued.
type StubCatalog struct {
	mu sync.Mutex

	MultiResults map[string][]tmdb.Result
	MovieResults map[string][]tmdb.Result
	TVResults    map[string][]tmdb.Result
	Shows        map[int64]*tmdb.ShowDetails
	SeasonData   map[int64]map[int]*tmdb.SeasonDetails

	// Err, when set, is returned by every call. ErrOnce clears it after the
	// first failing call so recovery behaviour can be observed.
	Err     error
	ErrOnce bool

	calls map[string]int
}

func (s *StubCatalog) begin(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[op]++
	if s.Err != nil {
		err := s.Err
		if s.ErrOnce {
			s.Err = nil
		}
		return err
	}
	return nil
}

// Calls returns how many times the named method has been invoked.
func (s *StubCatalog) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls returns the number of catalog calls across all methods.
func (s *StubCatalog) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *StubCatalog) SearchMovie(ctx context.Context, query string) (*tmdb.Response, error) {
	if err := s.begin("SearchMovie"); err != nil {
		return nil, err
	}
	results := s.MovieResults[query]
	return &tmdb.Response{Results: results, TotalResults: len(results)}, nil
}

func (s *StubCatalog) SearchTV(ctx context.Context, query string) (*tmdb.Response, error) {
	if err := s.begin("SearchTV"); err != nil {
		return nil, err
	}
	results := s.TVResults[query]
	return &tmdb.Response{Results: results, TotalResults: len(results)}, nil
}

func (s *StubCatalog) SearchMulti(ctx context.Context, query string) (*tmdb.Response, error) {
	if err := s.begin("SearchMulti"); err != nil {
		return nil, err
	}
	results := s.MultiResults[query]
	return &tmdb.Response{Results: results, TotalResults: len(results)}, nil
}

func (s *StubCatalog) GetShowDetails(ctx context.Context, showID int64) (*tmdb.ShowDetails, error) {
	if err := s.begin("GetShowDetails"); err != nil {
		return nil, err
	}
	show, ok := s.Shows[showID]
	if !ok {
		return nil, &tmdb.StatusError{Operation: "tv details", Code: http.StatusNotFound, Message: "show not stubbed"}
	}
	return show, nil
}

func (s *StubCatalog) GetSeasonDetails(ctx context.Context, showID int64, seasonNumber int) (*tmdb.SeasonDetails, error) {
	if err := s.begin("GetSeasonDetails"); err != nil {
		return nil, err
	}
	season, ok := s.SeasonData[showID][seasonNumber]
	if !ok {
		return nil, &tmdb.StatusError{Operation: "season details", Code: http.StatusNotFound, Message: "season not stubbed"}
	}
	return season, nil
}
