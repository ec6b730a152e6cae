package chunkfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// File is one discovered chunk file.
type File struct {
	Path  string
	Name  string
	Index int
}

// ParseIndex extracts the 1-based chunk index from a file name such as
// "n3_12.json". It reports false for names that do not follow the convention
// for the given dataset, including zero and negative indexes.
func ParseIndex(name, prefix string, level int) (int, bool) {
	if !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	stem := strings.TrimSuffix(name, ".json")
	lead := DatasetName(prefix, level) + "_"
	if !strings.HasPrefix(stem, lead) {
		return 0, false
	}
	index, err := strconv.Atoi(strings.TrimPrefix(stem, lead))
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}

// Discover lists a level's chunk files in ascending index order, file name as
// tiebreak. JSON files whose names do not parse are returned in the second
// value so callers can warn about them; directories and non-JSON entries are
// ignored. A missing level directory surfaces as an error satisfying
// errors.Is(err, fs.ErrNotExist).
func Discover(root, prefix string, level int) ([]File, []string, error) {
	dir := LevelDir(root, prefix, level)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list chunk directory: %w", err)
	}

	var files []File
	var skipped []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		index, ok := ParseIndex(name, prefix, level)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		files = append(files, File{Path: filepath.Join(dir, name), Name: name, Index: index})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Index != files[j].Index {
			return files[i].Index < files[j].Index
		}
		return files[i].Name < files[j].Name
	})
	return files, skipped, nil
}
