// Package config loads, normalizes, and validates kotoba configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: dataset naming, the directory layout shared by the split and
// merge passes, chunk sizing, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths, canonical log formats, and clear validation
// errors.
package config
