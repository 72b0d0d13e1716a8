// Package convert orchestrates one conversion run: read the viewing-history
// export, resolve every record against the catalog, synthesize the import
// hierarchy, and write the import and error-log files.
//
// Per-record failures never fail the run. Each one is appended to the error
// log with a stable reason label and the run moves on, so one unknown title
// in a thousand-row export costs one log line, not the whole conversion. The
// two exceptions are a rejected access token, which would fail every
// remaining record the same way, and context cancellation.
package convert
