// Package config loads, normalizes, and validates Lantern configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment fallbacks the
// publisher inherited from its deployment (CONTENT_BUCKET, CONTENT_TABLE,
// AWS_REGION/AWS_DEFAULT_REGION). Required values missing after all
// fallbacks fail validation before any store I/O happens.
package config
