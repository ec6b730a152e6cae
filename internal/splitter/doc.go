// Package splitter implements the first pass of the kotoba workflow.
//
// For each configured level it reads <source_dir>/<prefix><level>.json,
// flattens the nested groups into a single sequence of entries trimmed to
// the three study fields, and writes the sequence as 1-indexed chunk files
// under <chunk_dir>/<prefix><level>/. The chunk files are the editing
// surface: translators adjust the mean field in place and the merge pass
// folds the edits back into the source document.
//
// Splitting never deletes anything. A rerun overwrites chunk indexes it
// produces and leaves higher-indexed files from earlier runs in place;
// "kotoba status" surfaces the resulting counts.
package splitter
