package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"kotoba/internal/config"
	"kotoba/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	homeDir := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "kotoba.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "[paths]\n")
	fmt.Fprintf(&b, "source_dir = %q\n", cfg.Paths.SourceDir)
	fmt.Fprintf(&b, "chunk_dir = %q\n", cfg.Paths.ChunkDir)
	fmt.Fprintf(&b, "merged_dir = %q\n", cfg.Paths.MergedDir)
	fmt.Fprintf(&b, "log_dir = %q\n\n", cfg.Paths.LogDir)
	fmt.Fprintf(&b, "[dataset]\n")
	fmt.Fprintf(&b, "prefix = %q\n", cfg.Dataset.Prefix)
	fmt.Fprintf(&b, "levels = %s\n\n", tomlIntList(cfg.Dataset.Levels))
	fmt.Fprintf(&b, "[split]\n")
	fmt.Fprintf(&b, "chunk_size = %d\n\n", cfg.Split.ChunkSize)
	fmt.Fprintf(&b, "[merge]\n")
	fmt.Fprintf(&b, "strict_chunks = %t\n", cfg.Merge.StrictChunks)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func tomlIntList(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
