package vocab

// Partition splits entries into consecutive chunks of size elements, the last
// chunk possibly shorter. Empty input and a non-positive size both produce no
// chunks.
func Partition(entries []Entry, size int) [][]Entry {
	if size <= 0 || len(entries) == 0 {
		return nil
	}
	chunks := make([][]Entry, 0, (len(entries)+size-1)/size)
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		chunks = append(chunks, entries[start:end:end])
	}
	return chunks
}
