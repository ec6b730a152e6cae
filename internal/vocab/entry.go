package vocab

// Record field names shared by source datasets and chunk files.
const (
	FieldYomikata = "yomikata"
	FieldWord     = "word"
	FieldMean     = "mean"
)

// Entry is the trimmed projection of a vocabulary record: the reading, the
// surface word form, and the meaning an external editor revises.
type Entry struct {
	Yomikata string `json:"yomikata"`
	Word     string `json:"word"`
	Mean     string `json:"mean"`
}

// EntriesFromSequence extracts trimmed entries from a decoded chunk document.
// Items that are not records are dropped. The second return value is false
// when the document is not a sequence at all, so callers can distinguish a
// skippable file from an empty one.
func EntriesFromSequence(doc any) ([]Entry, bool) {
	items, ok := doc.([]any)
	if !ok {
		return nil, false
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, entryFromRecord(rec))
	}
	return entries, true
}

func entryFromRecord(rec map[string]any) Entry {
	return Entry{
		Yomikata: stringField(rec, FieldYomikata),
		Word:     stringField(rec, FieldWord),
		Mean:     stringField(rec, FieldMean),
	}
}

// stringField returns the string value for key, or "" when the field is
// missing or not a string. Presence checks only; no further validation.
func stringField(rec map[string]any, key string) string {
	if value, ok := rec[key].(string); ok {
		return value
	}
	return ""
}
