package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		c.Paths.SourceDir = defaultSourceDir
	}
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ChunkDir) == "" {
		c.Paths.ChunkDir = defaultChunkDir
	}
	if c.Paths.ChunkDir, err = expandPath(c.Paths.ChunkDir); err != nil {
		return fmt.Errorf("paths.chunk_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MergedDir) == "" {
		c.Paths.MergedDir = defaultMergedDir
	}
	if c.Paths.MergedDir, err = expandPath(c.Paths.MergedDir); err != nil {
		return fmt.Errorf("paths.merged_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeDataset trims the prefix and deduplicates levels while preserving
// the configured processing order. An explicitly empty level list is left for
// Validate to reject; only a list absent from the file keeps the defaults.
func (c *Config) normalizeDataset() {
	c.Dataset.Prefix = strings.TrimSpace(c.Dataset.Prefix)
	if len(c.Dataset.Levels) == 0 {
		return
	}
	levels := make([]int, 0, len(c.Dataset.Levels))
	seen := make(map[int]struct{}, len(c.Dataset.Levels))
	for _, level := range c.Dataset.Levels {
		if _, ok := seen[level]; ok {
			continue
		}
		seen[level] = struct{}{}
		levels = append(levels, level)
	}
	c.Dataset.Levels = levels
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
