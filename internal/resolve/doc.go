// Package resolve maps viewing-history records to catalog identities.
//
// The Resolver classifies each record as a movie or a TV episode from its
// season title, searches the catalog with a normalized key, and for TV
// content walks the show's season and episode lists until the watched
// episode is pinned down. A record whose season resolves but whose episode
// does not still succeeds with an unnumbered episode so the run can flag it
// for manual review instead of dropping it.
//
// All catalog traffic flows through a run-scoped Cache, so repeated episodes
// of the same show cost one season-list fetch instead of one per row, and
// through a pacing gate that keeps the outbound call cadence inside the
// catalog service's rate limit. Failures are tagged with sentinel errors
// (ErrNotFound, ErrSeasonNotFound, ErrService, ErrAuth) so the conversion
// run can distinguish a missing title from a broken service and abort only
// on credential problems.
package resolve
