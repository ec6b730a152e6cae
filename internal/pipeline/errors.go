package pipeline

import (
	"errors"

	"kotoba/internal/journal"
)

var (
	// ErrMissingSource marks a level whose source dataset file does not exist.
	ErrMissingSource = errors.New("source dataset missing")

	// ErrEmptyDataset marks a level whose source dataset flattens to no entries.
	ErrEmptyDataset = errors.New("dataset has no entries")
)

// Classify maps a level error to the journal status the runner records.
// Missing or empty inputs are expected conditions and journal as skipped;
// everything else journals as failed.
func Classify(err error) journal.LevelStatus {
	switch {
	case errors.Is(err, ErrMissingSource), errors.Is(err, ErrEmptyDataset):
		return journal.LevelSkipped
	default:
		return journal.LevelFailed
	}
}
