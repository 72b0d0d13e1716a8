// Package tmdb provides the TMDB API client used to resolve export titles
// against the catalog.
//
// The client authenticates with a v4 read access token (Bearer header) and
// exposes the search endpoints (movie, tv, multi) plus the two detail
// endpoints resolution needs: the season list of a show and the episode list
// of a season. Non-success responses are returned as *StatusError so callers
// can tell an authentication problem from an unavailable service.
package tmdb
