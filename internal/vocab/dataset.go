package vocab

import (
	"encoding/json"
	"fmt"
)

// position locates a well-formed record inside the nested source document.
type position struct {
	group int
	item  int
}

// Dataset owns a parsed per-level source document together with positional
// references to every well-formed record, in document order.
type Dataset struct {
	doc  any
	refs []position
}

// ParseDataset decodes a source document and indexes its records. Only a JSON
// syntax error fails; shape violations (a non-sequence document, non-sequence
// groups, non-record items) are filtered out and simply yield fewer records.
func ParseDataset(data []byte) (*Dataset, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	ds := &Dataset{doc: doc}
	groups, ok := doc.([]any)
	if !ok {
		return ds, nil
	}
	for g, rawGroup := range groups {
		group, ok := rawGroup.([]any)
		if !ok {
			continue
		}
		for i, rawItem := range group {
			if _, ok := rawItem.(map[string]any); ok {
				ds.refs = append(ds.refs, position{group: g, item: i})
			}
		}
	}
	return ds, nil
}

// Len returns the number of well-formed records in the flattened view.
func (d *Dataset) Len() int {
	return len(d.refs)
}

// Entry projects the record at flat index i onto its trimmed fields. Missing
// or non-string values become empty strings.
func (d *Dataset) Entry(i int) Entry {
	return entryFromRecord(d.record(i))
}

// Entries returns the full flattened trimmed sequence in document order.
func (d *Dataset) Entries() []Entry {
	entries := make([]Entry, d.Len())
	for i := range entries {
		entries[i] = d.Entry(i)
	}
	return entries
}

// SetMean overwrites the mean field of the record at flat index i, writing
// through the positional reference into the owned document.
func (d *Dataset) SetMean(i int, mean string) {
	d.record(i)[FieldMean] = mean
}

// Position reports the (group, item) document coordinates of flat index i for
// diagnostics.
func (d *Dataset) Position(i int) (group, item int) {
	pos := d.refs[i]
	return pos.group, pos.item
}

// Document exposes the owned document for serialization. Mutations applied
// through SetMean are visible here; everything else is as parsed.
func (d *Dataset) Document() any {
	return d.doc
}

func (d *Dataset) record(i int) map[string]any {
	pos := d.refs[i]
	return d.doc.([]any)[pos.group].([]any)[pos.item].(map[string]any)
}
