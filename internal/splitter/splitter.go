package splitter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"kotoba/internal/chunkfile"
	"kotoba/internal/config"
	"kotoba/internal/fileutil"
	"kotoba/internal/journal"
	"kotoba/internal/logging"
	"kotoba/internal/pipeline"
	"kotoba/internal/vocab"
)

// Splitter implements the split pass: it flattens each level's source
// dataset into trimmed entries and writes fixed-size chunk files.
type Splitter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs the split pass handler.
func New(cfg *config.Config, logger *slog.Logger) *Splitter {
	return &Splitter{cfg: cfg, logger: logging.NewComponentLogger(logger, "splitter")}
}

// Kind reports the journal run kind recorded for this pass.
func (s *Splitter) Kind() journal.RunKind { return journal.KindSplit }

// ProcessLevel splits one level's source dataset into chunk files.
// Chunk files from an earlier run with a higher index are left in place.
func (s *Splitter) ProcessLevel(ctx context.Context, level int) (pipeline.Report, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Report{}, err
	}

	prefix := s.cfg.Dataset.Prefix
	sourcePath := chunkfile.DatasetPath(s.cfg.Paths.SourceDir, prefix, level)
	logger := s.logger.With(logging.String(logging.FieldDataset, chunkfile.DatasetName(prefix, level)))

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pipeline.Report{}, fmt.Errorf("%w: %s", pipeline.ErrMissingSource, sourcePath)
		}
		return pipeline.Report{}, fmt.Errorf("read source dataset: %w", err)
	}

	dataset, err := vocab.ParseDataset(data)
	if err != nil {
		return pipeline.Report{}, fmt.Errorf("parse source dataset %s: %w", sourcePath, err)
	}

	entries := dataset.Entries()
	if len(entries) == 0 {
		return pipeline.Report{}, fmt.Errorf("%w: %s", pipeline.ErrEmptyDataset, sourcePath)
	}

	chunks := vocab.Partition(entries, s.cfg.Split.ChunkSize)
	levelDir := chunkfile.LevelDir(s.cfg.Paths.ChunkDir, prefix, level)
	if err := os.MkdirAll(levelDir, 0o755); err != nil {
		return pipeline.Report{}, fmt.Errorf("create chunk directory: %w", err)
	}

	for i, chunk := range chunks {
		path := chunkfile.ChunkPath(s.cfg.Paths.ChunkDir, prefix, level, i+1)
		if err := fileutil.WriteJSONDocument(path, chunk); err != nil {
			return pipeline.Report{}, fmt.Errorf("write chunk %d: %w", i+1, err)
		}
		logger.Debug("chunk written",
			logging.String(logging.FieldPath, path),
			logging.Int("entries", len(chunk)),
		)
	}

	logger.Info("dataset split",
		logging.Int("entries", len(entries)),
		logging.Int("chunks", len(chunks)),
		logging.String(logging.FieldPath, levelDir),
	)
	return pipeline.Report{Entries: len(entries), Chunks: len(chunks)}, nil
}
