package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadJSONDocument reads path and decodes it into an untyped JSON document.
// The read error is wrapped, not replaced, so callers can test for
// fs.ErrNotExist.
func ReadJSONDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// WriteJSONDocument writes doc to path as pretty-printed UTF-8 JSON:
// two-space indent, non-ASCII characters kept literal rather than \u-escaped,
// trailing newline. The parent directory must already exist.
func WriteJSONDocument(path string, doc any) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
