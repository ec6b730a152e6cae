package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// validatePaths rejects shared data directories. Split writing chunks into
// the source tree or merge writing over the source files are the two
// accidents the layout exists to prevent.
func (c *Config) validatePaths() error {
	dirs := []struct {
		key string
		dir string
	}{
		{"paths.source_dir", c.Paths.SourceDir},
		{"paths.chunk_dir", c.Paths.ChunkDir},
		{"paths.merged_dir", c.Paths.MergedDir},
	}
	seen := make(map[string]string, len(dirs))
	for _, entry := range dirs {
		if previous, ok := seen[entry.dir]; ok {
			return fmt.Errorf("%s and %s must be distinct directories", previous, entry.key)
		}
		seen[entry.dir] = entry.key
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.Prefix == "" {
		return errors.New("dataset.prefix must be set")
	}
	if strings.ContainsAny(c.Dataset.Prefix, `/\`) {
		return errors.New("dataset.prefix must not contain path separators")
	}
	if strings.ContainsAny(c.Dataset.Prefix, "0123456789") {
		return errors.New("dataset.prefix must not contain digits; the level number follows the prefix")
	}
	if len(c.Dataset.Levels) == 0 {
		return errors.New("dataset.levels must list at least one level")
	}
	for _, level := range c.Dataset.Levels {
		if level < 1 {
			return fmt.Errorf("dataset.levels entries must be positive, got %d", level)
		}
	}
	return nil
}

func (c *Config) validateSplit() error {
	if c.Split.ChunkSize <= 0 {
		return errors.New("split.chunk_size must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
