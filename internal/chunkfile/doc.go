// Package chunkfile defines the on-disk conventions shared by the split and
// merge passes: where a level's dataset file lives, where its chunk files go,
// and how chunk files are named and discovered.
//
// Each level's chunks live in their own directory named after the dataset
// (prefix plus level number, e.g. "n3"). Chunk files carry a 1-based index
// suffix, and discovery orders them numerically so index 10 sorts after
// index 9. JSON files in a chunk directory that do not follow the naming
// convention are reported back to the caller rather than silently mixed in.
package chunkfile
