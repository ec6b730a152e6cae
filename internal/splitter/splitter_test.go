package splitter_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kotoba/internal/chunkfile"
	"kotoba/internal/journal"
	"kotoba/internal/logging"
	"kotoba/internal/pipeline"
	"kotoba/internal/splitter"
	"kotoba/internal/testsupport"
)

func readChunkRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	doc := testsupport.ReadDocument(t, path)
	seq, ok := doc.([]any)
	if !ok {
		t.Fatalf("chunk %s is not a sequence: %T", path, doc)
	}
	records := make([]map[string]any, 0, len(seq))
	for _, item := range seq {
		record, ok := item.(map[string]any)
		if !ok {
			t.Fatalf("chunk %s holds a non-record item: %T", path, item)
		}
		records = append(records, record)
	}
	return records
}

func TestProcessLevelWritesIndexedChunks(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithChunkSize(3))

	var groups []any
	var group []any
	for i := 1; i <= 7; i++ {
		group = append(group, testsupport.Record(fmt.Sprintf("よみ%d", i), fmt.Sprintf("word%d", i), fmt.Sprintf("mean%d", i), nil))
		if len(group) == 3 {
			groups = append(groups, group)
			group = nil
		}
	}
	groups = append(groups, group)
	testsupport.WriteSource(t, cfg, 3, groups)

	handler := splitter.New(cfg, logging.NewNop())
	if handler.Kind() != journal.KindSplit {
		t.Fatalf("unexpected kind: %s", handler.Kind())
	}

	report, err := handler.ProcessLevel(context.Background(), 3)
	if err != nil {
		t.Fatalf("ProcessLevel: %v", err)
	}
	if report.Entries != 7 || report.Chunks != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}

	wantSizes := []int{3, 3, 1}
	next := 1
	for i, size := range wantSizes {
		path := chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, 3, i+1)
		records := readChunkRecords(t, path)
		if len(records) != size {
			t.Fatalf("chunk %d: expected %d records, got %d", i+1, size, len(records))
		}
		for _, record := range records {
			if got := record["word"]; got != fmt.Sprintf("word%d", next) {
				t.Fatalf("chunk %d: expected word%d, got %v", i+1, next, got)
			}
			next++
		}
	}
	if _, err := os.Stat(chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, 3, 4)); !os.IsNotExist(err) {
		t.Fatalf("expected exactly 3 chunks, stat chunk 4: %v", err)
	}
}

func TestProcessLevelTrimsRecordFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	doc := []any{[]any{
		testsupport.Record("べんきょう", "勉強", "study", map[string]any{"level": 2, "tags": []any{"noun"}}),
	}}
	testsupport.WriteSource(t, cfg, 2, doc)

	handler := splitter.New(cfg, logging.NewNop())
	if _, err := handler.ProcessLevel(context.Background(), 2); err != nil {
		t.Fatalf("ProcessLevel: %v", err)
	}

	records := readChunkRecords(t, chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, 2, 1))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	record := records[0]
	if len(record) != 3 {
		t.Fatalf("expected exactly yomikata/word/mean, got %v", record)
	}
	if record["yomikata"] != "べんきょう" || record["word"] != "勉強" || record["mean"] != "study" {
		t.Fatalf("unexpected record values: %v", record)
	}
}

func TestProcessLevelKeepsNonASCIILiteral(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteSource(t, cfg, 1, []any{[]any{testsupport.Record("べんきょう", "勉強", "study", nil)}})

	handler := splitter.New(cfg, logging.NewNop())
	if _, err := handler.ProcessLevel(context.Background(), 1); err != nil {
		t.Fatalf("ProcessLevel: %v", err)
	}

	data, err := os.ReadFile(chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, 1, 1))
	if err != nil {
		t.Fatalf("read chunk: %v", err)
	}
	if !strings.Contains(string(data), "勉強") {
		t.Fatalf("expected literal UTF-8 in chunk, got: %s", data)
	}
	if strings.Contains(string(data), "\\u") {
		t.Fatalf("expected no escape sequences in chunk, got: %s", data)
	}
}

func TestProcessLevelMissingSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	handler := splitter.New(cfg, logging.NewNop())
	_, err := handler.ProcessLevel(context.Background(), 1)
	if !errors.Is(err, pipeline.ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
	if pipeline.Classify(err) != journal.LevelSkipped {
		t.Fatalf("missing source must classify as skipped")
	}
}

func TestProcessLevelEmptyDataset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteSource(t, cfg, 4, []any{[]any{}, []any{42, "loose string"}, "not a group"})

	handler := splitter.New(cfg, logging.NewNop())
	_, err := handler.ProcessLevel(context.Background(), 4)
	if !errors.Is(err, pipeline.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}

	levelDir := chunkfile.LevelDir(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, 4)
	if _, statErr := os.Stat(levelDir); !os.IsNotExist(statErr) {
		t.Fatalf("expected no chunk directory for empty dataset, stat: %v", statErr)
	}
}

func TestProcessLevelSourceSyntaxError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source dir: %v", err)
	}
	path := chunkfile.DatasetPath(cfg.Paths.SourceDir, cfg.Dataset.Prefix, 5)
	if err := os.WriteFile(path, []byte("[[{\"word\": "), 0o644); err != nil {
		t.Fatalf("write corrupt source: %v", err)
	}

	handler := splitter.New(cfg, logging.NewNop())
	_, err := handler.ProcessLevel(context.Background(), 5)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, pipeline.ErrMissingSource) || errors.Is(err, pipeline.ErrEmptyDataset) {
		t.Fatalf("syntax error must not classify as skipped: %v", err)
	}
	if pipeline.Classify(err) != journal.LevelFailed {
		t.Fatal("syntax error must classify as failed")
	}
}

func TestProcessLevelLeavesStaleChunksInPlace(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithChunkSize(2))
	testsupport.WriteSource(t, cfg, 1, []any{[]any{
		testsupport.Record("いち", "一", "one", nil),
		testsupport.Record("に", "二", "two", nil),
		testsupport.Record("さん", "三", "three", nil),
	}})

	stale := chunkfile.ChunkPath(cfg.Paths.ChunkDir, cfg.Dataset.Prefix, 1, 9)
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("create level dir: %v", err)
	}
	if err := os.WriteFile(stale, []byte("[]\n"), 0o644); err != nil {
		t.Fatalf("seed stale chunk: %v", err)
	}

	handler := splitter.New(cfg, logging.NewNop())
	report, err := handler.ProcessLevel(context.Background(), 1)
	if err != nil {
		t.Fatalf("ProcessLevel: %v", err)
	}
	if report.Chunks != 2 {
		t.Fatalf("expected 2 chunks, got %d", report.Chunks)
	}
	if _, err := os.Stat(stale); err != nil {
		t.Fatalf("stale chunk must be left in place: %v", err)
	}
}
