// Package history reads streaming-service viewing-history exports and
// prepares the records for conversion.
//
// The export is a semicolon-delimited file with a header row and the
// positional fields profile, program title, season title, and watch date.
// Read tolerates a UTF-8 BOM, skips blank rows, and keeps malformed records
// (missing title, unparseable date) so the conversion run can account for
// them in its error log instead of silently dropping them. Preprocess orders
// records by watch date and collapses rewatches of the same title down to
// the most recent viewing.
package history
