package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"kotoba/internal/config"
	"kotoba/internal/journal"
	"kotoba/internal/logging"
	"kotoba/internal/merger"
	"kotoba/internal/pipeline"
	"kotoba/internal/splitter"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "split",
		Short: "Flatten source datasets into editable chunk files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, ctx, func(cfg *config.Config, logger *slog.Logger) pipeline.LevelHandler {
				return splitter.New(cfg, logger)
			})
		},
	}
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Fold edited chunk files back into merged datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, ctx, func(cfg *config.Config, logger *slog.Logger) pipeline.LevelHandler {
				return merger.New(cfg, logger)
			})
		},
	}
}

// runPass wires one pass handler into the pipeline runner and executes it.
// Level failures are journaled by the runner and do not surface here, so
// a level-scoped problem still exits zero; run-scoped failures propagate.
func runPass(cmd *cobra.Command, ctx *commandContext, build func(*config.Config, *slog.Logger) pipeline.LevelHandler) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	runner, err := pipeline.NewRunner(cfg, store, build(cfg, logger), logger)
	if err != nil {
		return err
	}
	return runner.Run(cmd.Context())
}
