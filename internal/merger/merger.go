package merger

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

// Merger implements the merge pass: it folds edited chunk files back into
// the source document and writes the result to the merged directory.
type Merger struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs the merge pass handler.
func New(cfg *config.Config, logger *slog.Logger) *Merger {
	return &Merger{cfg: cfg, logger: logging.NewComponentLogger(logger, "merger")}
}

// Kind reports the journal run kind recorded for this pass.
func (m *Merger) Kind() journal.RunKind { return journal.KindMerge }

// ProcessLevel merges one level's chunk files into its source document.
// The source document is never modified in place; the merged copy goes to
// <merged_dir>/<prefix><level>.json.
func (m *Merger) ProcessLevel(ctx context.Context, level int) (pipeline.Report, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Report{}, err
	}

	prefix := m.cfg.Dataset.Prefix
	sourcePath := chunkfile.DatasetPath(m.cfg.Paths.SourceDir, prefix, level)
	logger := m.logger.With(logging.String(logging.FieldDataset, chunkfile.DatasetName(prefix, level)))

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

	updated, chunkCount, err := m.readChunks(logger, level)
	if err != nil {
		return pipeline.Report{}, err
	}

	// The length gate protects positional merging: any drift between the
	// source and the edited sequence makes index pairing meaningless.
	if dataset.Len() != len(updated) {
		return pipeline.Report{Chunks: chunkCount}, fmt.Errorf(
			"length mismatch: source has %d entries, chunks hold %d", dataset.Len(), len(updated))
	}

	mismatches := 0
	for i, edited := range updated {
		original := dataset.Entry(i)
		if !vocab.KeysMatch(original, edited) {
			mismatches++
			group, item := dataset.Position(i)
			logger.Warn("entry keys differ; keeping original mean",
				logging.Int(logging.FieldPosition, i),
				logging.String("document_position", fmt.Sprintf("%d/%d", group, item)),
				logging.String("source_word", original.Word),
				logging.String("chunk_word", edited.Word),
				logging.String("source_yomikata", original.Yomikata),
				logging.String("chunk_yomikata", edited.Yomikata),
			)
			continue
		}
		dataset.SetMean(i, edited.Mean)
	}

	if err := os.MkdirAll(m.cfg.Paths.MergedDir, 0o755); err != nil {
		return pipeline.Report{}, fmt.Errorf("create merged directory: %w", err)
	}
	mergedPath := chunkfile.DatasetPath(m.cfg.Paths.MergedDir, prefix, level)
	if err := fileutil.WriteJSONDocument(mergedPath, dataset.Document()); err != nil {
		return pipeline.Report{}, fmt.Errorf("write merged dataset: %w", err)
	}

	logger.Info("dataset merged",
		logging.Int("entries", len(updated)),
		logging.Int("chunks", chunkCount),
		logging.Int("mismatches", mismatches),
		logging.String(logging.FieldPath, mergedPath),
	)
	return pipeline.Report{Entries: len(updated), Chunks: chunkCount, Mismatches: mismatches}, nil
}

// readChunks loads every chunk file for the level in index order and
// concatenates their entries into the edited sequence. A missing chunk
// directory yields an empty sequence so the length gate reports it.
func (m *Merger) readChunks(logger *slog.Logger, level int) ([]vocab.Entry, int, error) {
	files, skipped, err := chunkfile.Discover(m.cfg.Paths.ChunkDir, m.cfg.Dataset.Prefix, level)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("chunk directory missing; merging zero entries",
				logging.String(logging.FieldPath, chunkfile.LevelDir(m.cfg.Paths.ChunkDir, m.cfg.Dataset.Prefix, level)))
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("discover chunks: %w", err)
	}
	for _, name := range skipped {
		logger.Warn("ignoring file with unparsable chunk index",
			logging.String(logging.FieldChunk, name))
	}

	var entries []vocab.Entry
	count := 0
	for _, file := range files {
		doc, err := fileutil.ReadJSONDocument(file.Path)
		if err != nil {
			if m.cfg.Merge.StrictChunks {
				return nil, 0, fmt.Errorf("parse chunk %s: %w", file.Name, err)
			}
			logger.Warn("skipping unreadable chunk",
				logging.String(logging.FieldChunk, file.Name),
				logging.Error(err),
			)
			continue
		}
		chunkEntries, ok := vocab.EntriesFromSequence(doc)
		if !ok {
			logger.Warn("skipping chunk without a record sequence",
				logging.String(logging.FieldChunk, file.Name))
			continue
		}
		entries = append(entries, chunkEntries...)
		count++
	}
	return entries, count, nil
}
