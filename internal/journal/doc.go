// Package journal persists run outcomes in SQLite so the status command can
// report on past split and merge passes.
//
// Each invocation of a pass is a run; every configured level gets exactly one
// outcome row per run recording its status (completed, skipped, failed),
// a human-readable detail, and the entry/chunk/mismatch counts the pass
// observed. The database lives in the configured log directory and is a
// diagnostic record, not application state: deleting it loses history and
// nothing else.
//
// Schema changes bump schemaVersion; the store refuses databases written
// under a different version rather than migrating them.
package journal
