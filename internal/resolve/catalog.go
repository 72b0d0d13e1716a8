package resolve

import (
	"context"

	"watchlog/internal/tmdb"
)

// Kind classifies a catalog identity.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "tv"
)

// Catalog is the subset of the TMDB client the resolver depends on. The
// multi search drives regular resolution; the single-kind searches back the
// forced lookups of the resolve diagnostic command.
type Catalog interface {
	SearchMovie(ctx context.Context, query string) (*tmdb.Response, error)
	SearchTV(ctx context.Context, query string) (*tmdb.Response, error)
	SearchMulti(ctx context.Context, query string) (*tmdb.Response, error)
	GetShowDetails(ctx context.Context, showID int64) (*tmdb.ShowDetails, error)
	GetSeasonDetails(ctx context.Context, showID int64, seasonNumber int) (*tmdb.SeasonDetails, error)
}
