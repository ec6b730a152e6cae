// Package logging assembles the structured slog loggers used across kotoba.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized field keys that keep run, dataset,
// and chunk identifiers uniform across components. A no-op logger is
// available for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the tool.
package logging
