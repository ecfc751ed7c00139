// Package config loads, normalizes, and validates nazar configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_API_TOKEN. The Config type centralizes every knob the CLI needs, so
// input/data directories and inference credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
