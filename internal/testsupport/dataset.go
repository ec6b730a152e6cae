package testsupport

import (
	"os"
	"testing"

	"kotoba/internal/chunkfile"
	"kotoba/internal/config"
	"kotoba/internal/fileutil"
	"kotoba/internal/vocab"
)

// Record builds a raw dataset record with optional extra fields alongside the
// three trimmed ones.
func Record(yomikata, word, mean string, extra map[string]any) map[string]any {
	rec := map[string]any{
		vocab.FieldYomikata: yomikata,
		vocab.FieldWord:     word,
		vocab.FieldMean:     mean,
	}
	for key, value := range extra {
		rec[key] = value
	}
	return rec
}

// WriteSource writes a nested per-level source document into the configured
// source directory.
func WriteSource(t testing.TB, cfg *config.Config, level int, doc any) string {
	t.Helper()

	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source dir: %v", err)
	}
	path := chunkfile.DatasetPath(cfg.Paths.SourceDir, cfg.Dataset.Prefix, level)
	if err := fileutil.WriteJSONDocument(path, doc); err != nil {
		t.Fatalf("write source %s: %v", path, err)
	}
	return path
}

// WriteChunk writes one chunk file for a level into the configured chunk tree.
func WriteChunk(t testing.TB, cfg *config.Config, level, index int, entries []vocab.Entry) string {
	t.Helper()

	dir := chunkfile.LevelDir(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, level)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir chunk dir: %v", err)
	}
	path := chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, level, index)
	if err := fileutil.WriteJSONDocument(path, entries); err != nil {
		t.Fatalf("write chunk %s: %v", path, err)
	}
	return path
}

// WriteRawChunk writes arbitrary bytes as a chunk file, for corrupt-file
// scenarios the JSON helpers would reject.
func WriteRawChunk(t testing.TB, cfg *config.Config, level, index int, data []byte) string {
	t.Helper()

	dir := chunkfile.LevelDir(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, level)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir chunk dir: %v", err)
	}
	path := chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, level, index)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write chunk %s: %v", path, err)
	}
	return path
}

// ReadDocument decodes a JSON file for assertions.
func ReadDocument(t testing.TB, path string) any {
	t.Helper()

	doc, err := fileutil.ReadJSONDocument(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return doc
}
