// Package pipeline drives a pass across every configured dataset level.
//
// A Runner owns the run lifecycle: it serializes concurrent invocations
// with a lock file in the log directory, opens a journal run, surfaces
// preflight warnings, and then hands each level to its LevelHandler in
// configured order. Level errors never abort the run; they are classified
// through the sentinel errors in this package and journaled, and the loop
// moves on to the next level. Only run-scoped failures (lock contention,
// journal access) surface as errors from Run.
package pipeline
