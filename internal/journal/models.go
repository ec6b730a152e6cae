package journal

import "time"

// RunKind identifies which pass a run executed.
type RunKind string

const (
	KindSplit RunKind = "split"
	KindMerge RunKind = "merge"
)

// LevelStatus classifies the outcome of one level within a run.
type LevelStatus string

const (
	// LevelCompleted means the pass produced its output for the level.
	LevelCompleted LevelStatus = "completed"
	// LevelSkipped means the level had nothing to do (missing source,
	// empty dataset) and was passed over with a warning.
	LevelSkipped LevelStatus = "skipped"
	// LevelFailed means the level aborted without output; the run moved on
	// to the next level.
	LevelFailed LevelStatus = "failed"
)

// Run is one split or merge invocation.
type Run struct {
	ID         string
	Kind       RunKind
	StartedAt  time.Time
	FinishedAt *time.Time
}

// LevelOutcome records how one level fared in a run. Entries counts the
// flattened records seen, Chunks the chunk files written or read, and
// Mismatches the positions whose word/reading keys no longer lined up.
type LevelOutcome struct {
	RunID      string
	Level      int
	Status     LevelStatus
	Detail     string
	Entries    int
	Chunks     int
	Mismatches int
	RecordedAt time.Time
}

// RunSummary is a run together with its per-status level counts.
type RunSummary struct {
	Run
	Completed int
	Skipped   int
	Failed    int
}
