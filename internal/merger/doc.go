// Package merger implements the second pass of the kotoba workflow.
//
// For each configured level it reads the source document and the edited
// chunk files in index order, pairs them positionally, and copies each
// edited mean back into the source structure before writing the result to
// the merged directory. Two guards keep the pairing honest: the total
// entry count must match exactly, and a per-entry word/reading comparison
// (NFC-normalized) keeps an edit out of any entry whose identity changed.
//
// Chunk parse failures are skipped with a warning by default; setting
// [merge] strict_chunks fails the level at the first unreadable file.
package merger
