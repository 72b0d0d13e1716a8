// Package titles cleans the decorated program and season titles found in
// streaming-service viewing exports before they are used as catalog search
// keys.
//
// Export titles carry decoration the catalog does not know about, most
// commonly a trailing season qualifier in the export's locale ("Prison
// Break: Staffel 1", "Loki - Season 2"). Normalize strips that decoration to
// a fixed point so the result is stable under re-application, SplitSeason
// additionally recovers the season number the qualifier encoded, and Fold
// produces the case- and accent-insensitive comparison key used when export
// names are matched against catalog names.
package titles
