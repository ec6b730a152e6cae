package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kotoba/internal/chunkfile"
	"kotoba/internal/config"
	"kotoba/internal/fileutil"
	"kotoba/internal/journal"
	"kotoba/internal/preflight"
	"kotoba/internal/vocab"
)

type checkView struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type outcomeView struct {
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	Entries    int       `json:"entries"`
	Chunks     int       `json:"chunks"`
	Mismatches int       `json:"mismatches"`
	RecordedAt time.Time `json:"recorded_at"`
}

type levelView struct {
	Level         int          `json:"level"`
	Dataset       string       `json:"dataset"`
	SourceState   string       `json:"source_state"`
	SourceEntries int          `json:"source_entries"`
	ChunkFiles    int          `json:"chunk_files"`
	ChunkEntries  int          `json:"chunk_entries"`
	LastSplit     *outcomeView `json:"last_split"`
	LastMerge     *outcomeView `json:"last_merge"`
}

type statusReport struct {
	ConfigPath string      `json:"config_path"`
	Checks     []checkView `json:"checks"`
	Levels     []levelView `json:"levels"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dataset, chunk, and journal state per level",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report, err := collectStatus(cmd.Context(), cfg, ctx.resolvedConfigPath())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			renderStatus(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}

func collectStatus(ctx context.Context, cfg *config.Config, configPath string) (*statusReport, error) {
	report := &statusReport{ConfigPath: configPath}
	for _, result := range preflight.RunAll(cfg) {
		report.Checks = append(report.Checks, checkView{
			Name:   result.Name,
			Passed: result.Passed,
			Detail: result.Detail,
		})
	}

	store, err := journal.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	splits, err := store.LatestLevelOutcomes(ctx, journal.KindSplit)
	if err != nil {
		return nil, fmt.Errorf("load split outcomes: %w", err)
	}
	merges, err := store.LatestLevelOutcomes(ctx, journal.KindMerge)
	if err != nil {
		return nil, fmt.Errorf("load merge outcomes: %w", err)
	}

	for _, level := range cfg.Dataset.Levels {
		view := levelView{
			Level:   level,
			Dataset: chunkfile.DatasetName(cfg.Dataset.Prefix, level),
		}
		view.SourceState, view.SourceEntries = sourceSummary(cfg, level)
		view.ChunkFiles, view.ChunkEntries = chunkSummary(cfg, level)
		if outcome, ok := splits[level]; ok {
			view.LastSplit = newOutcomeView(outcome)
		}
		if outcome, ok := merges[level]; ok {
			view.LastMerge = newOutcomeView(outcome)
		}
		report.Levels = append(report.Levels, view)
	}
	return report, nil
}

func newOutcomeView(outcome journal.LevelOutcome) *outcomeView {
	return &outcomeView{
		Status:     string(outcome.Status),
		Detail:     outcome.Detail,
		Entries:    outcome.Entries,
		Chunks:     outcome.Chunks,
		Mismatches: outcome.Mismatches,
		RecordedAt: outcome.RecordedAt,
	}
}

func sourceSummary(cfg *config.Config, level int) (string, int) {
	data, err := os.ReadFile(chunkfile.DatasetPath(cfg.Paths.SourceDir, cfg.Dataset.Prefix, level))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "missing", 0
		}
		return "error", 0
	}
	dataset, err := vocab.ParseDataset(data)
	if err != nil {
		return "error", 0
	}
	return "ok", dataset.Len()
}

func chunkSummary(cfg *config.Config, level int) (files, entries int) {
	discovered, _, err := chunkfile.Discover(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, level)
	if err != nil {
		return 0, 0
	}
	for _, file := range discovered {
		doc, err := fileutil.ReadJSONDocument(file.Path)
		if err != nil {
			continue
		}
		if seq, ok := vocab.EntriesFromSequence(doc); ok {
			entries += len(seq)
		}
	}
	return len(discovered), entries
}
