package preflight

import (
	"kotoba/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every filesystem check for the given config.
// The source directory must already exist; the output and log
// directories only need a writable ancestor because the passes
// create them on demand.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckSourceDir(cfg.Paths.SourceDir),
		CheckOutputDir("Chunk directory", cfg.Paths.ChunkDir),
		CheckOutputDir("Merged directory", cfg.Paths.MergedDir),
		CheckOutputDir("Log directory", cfg.Paths.LogDir),
	}
}
