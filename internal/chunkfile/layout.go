package chunkfile

import (
	"fmt"
	"path/filepath"
)

// DatasetName returns the bare dataset name for a level, e.g. "n3".
func DatasetName(prefix string, level int) string {
	return fmt.Sprintf("%s%d", prefix, level)
}

// DatasetPath returns the per-level dataset file inside dir. The same naming
// serves source files and merged output, which is what keeps the merged tree
// a drop-in replacement for the source tree.
func DatasetPath(dir, prefix string, level int) string {
	return filepath.Join(dir, DatasetName(prefix, level)+".json")
}

// LevelDir returns the directory holding a level's chunk files.
func LevelDir(root, prefix string, level int) string {
	return filepath.Join(root, DatasetName(prefix, level))
}

// ChunkPath returns the file for one chunk of a level. Indexes are 1-based.
func ChunkPath(root, prefix string, level, index int) string {
	name := fmt.Sprintf("%s_%d.json", DatasetName(prefix, level), index)
	return filepath.Join(LevelDir(root, prefix, level), name)
}
