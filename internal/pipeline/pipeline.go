package pipeline

import (
	"context"

	"kotoba/internal/journal"
)

// Report summarizes one processed level.
type Report struct {
	Entries    int
	Chunks     int
	Mismatches int
	Detail     string
}

// LevelHandler describes the contract the runner needs from each pass.
type LevelHandler interface {
	Kind() journal.RunKind
	ProcessLevel(context.Context, int) (Report, error)
}
