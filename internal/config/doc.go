// Package config loads, normalizes, and validates watchlog configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_READ_ACCESS_TOKEN (optionally sourced from a .env file). The Config
// type centralizes every knob the CLI needs, so input/output locations and the
// catalog credential are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
