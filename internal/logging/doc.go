// Package logging assembles the structured slog loggers used across
// watchlog.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so conversion code automatically tags
// log lines with the run ID and the input record being processed. A no-op
// logger is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same field names and formats.
package logging
