package testsupport

import (
	"path/filepath"
	"testing"

	"kotoba/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "source")
	cfg.Paths.ChunkDir = filepath.Join(base, "chunks")
	cfg.Paths.MergedDir = filepath.Join(base, "merged")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithChunkSize overrides the split chunk size on the test config.
func WithChunkSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Split.ChunkSize = size
	}
}

// WithLevels overrides the processed level set on the test config.
func WithLevels(levels ...int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Dataset.Levels = levels
	}
}

// WithStrictChunks enables strict chunk parsing on the test config.
func WithStrictChunks() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Merge.StrictChunks = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SourceDir)
}
