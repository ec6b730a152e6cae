package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"kotoba/internal/chunkfile"
	"kotoba/internal/config"
	"kotoba/internal/journal"
	"kotoba/internal/logging"
	"kotoba/internal/preflight"
)

const lockFileName = "kotoba.lock"

// Runner executes a LevelHandler across every configured level.
type Runner struct {
	cfg     *config.Config
	store   *journal.Store
	handler LevelHandler
	logger  *slog.Logger
}

// NewRunner constructs a runner with initialized dependencies.
func NewRunner(cfg *config.Config, store *journal.Store, handler LevelHandler, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil || handler == nil {
		return nil, errors.New("runner requires config, journal store, and handler")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		store:   store,
		handler: handler,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}, nil
}

// Run processes the configured levels sequentially under the workspace lock.
// Level failures are journaled and logged but never returned; the error
// return is reserved for run-scoped failures.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare log directory: %w", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.LogDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another kotoba run is already in progress (lock %s)", lock.Path())
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release run lock", logging.Error(unlockErr))
		}
	}()

	run, err := r.store.BeginRun(ctx, r.handler.Kind())
	if err != nil {
		return fmt.Errorf("begin journal run: %w", err)
	}

	logger := r.logger.With(logging.String(logging.FieldRunID, run.ID))
	start := time.Now()
	logger.Info("run started",
		logging.String("kind", string(run.Kind)),
		logging.Int("levels", len(r.cfg.Dataset.Levels)),
	)

	for _, result := range preflight.RunAll(r.cfg) {
		if result.Passed {
			continue
		}
		logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
		)
	}

	var completed, skipped, failed int
	for _, level := range r.cfg.Dataset.Levels {
		outcome, levelErr := r.processLevel(ctx, logger, run.ID, level)
		if levelErr != nil {
			return levelErr
		}
		if err := r.store.RecordLevel(ctx, outcome); err != nil {
			return fmt.Errorf("journal level %d: %w", level, err)
		}
		switch outcome.Status {
		case journal.LevelCompleted:
			completed++
		case journal.LevelSkipped:
			skipped++
		default:
			failed++
		}
	}

	if err := r.store.FinishRun(ctx, run); err != nil {
		return fmt.Errorf("finish journal run: %w", err)
	}
	logger.Info("run finished",
		logging.Int("completed", completed),
		logging.Int("skipped", skipped),
		logging.Int("failed", failed),
		logging.Duration("run_duration", time.Since(start)),
	)
	return nil
}

// processLevel invokes the handler for one level and converts the result
// into a journal outcome. The error return is non-nil only for shutdown.
func (r *Runner) processLevel(ctx context.Context, logger *slog.Logger, runID string, level int) (journal.LevelOutcome, error) {
	levelLogger := logger.With(logging.String(logging.FieldDataset, chunkfile.DatasetName(r.cfg.Dataset.Prefix, level)))
	levelStart := time.Now()
	levelLogger.Info("level started")

	report, err := r.handler.ProcessLevel(ctx, level)
	outcome := journal.LevelOutcome{
		RunID:      runID,
		Level:      level,
		Entries:    report.Entries,
		Chunks:     report.Chunks,
		Mismatches: report.Mismatches,
		Detail:     report.Detail,
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			levelLogger.Debug("run interrupted by shutdown")
			return outcome, err
		}
		outcome.Status = Classify(err)
		outcome.Detail = err.Error()
		if outcome.Status == journal.LevelSkipped {
			levelLogger.Warn("level skipped", logging.Error(err))
		} else {
			levelLogger.Error("level failed", logging.Error(err))
		}
		return outcome, nil
	}

	outcome.Status = journal.LevelCompleted
	levelLogger.Info("level completed",
		logging.Int("entries", report.Entries),
		logging.Int("chunks", report.Chunks),
		logging.Int("mismatches", report.Mismatches),
		logging.Duration("level_duration", time.Since(levelStart)),
	)
	return outcome, nil
}
