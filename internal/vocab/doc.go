// Package vocab defines the shared data shape both passes operate on: the
// parsed per-level source document, its flattened view, and the trimmed entry
// projection external editors work with.
//
// A Dataset owns the decoded JSON document and an index of positional
// references to every well-formed record; non-sequence groups and non-record
// items are dropped during indexing, never raised as errors. Mutations go
// through explicit (group, item) positions so the nested structure, unknown
// fields, and even malformed elements serialize back out untouched. Partition and KeysMatch round out the chunk math and the
// word/reading identity check used by the merge validation.
//
// Both the splitter and the merger must flatten through this package only;
// a second filter implementation would break the positional correspondence
// the merge relies on.
package vocab
