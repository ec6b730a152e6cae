package vocab_test

import (
	"encoding/json"
	"strings"
	"testing"

	"kotoba/internal/vocab"
)

func parse(t *testing.T, payload string) *vocab.Dataset {
	t.Helper()
	ds, err := vocab.ParseDataset([]byte(payload))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}
	return ds
}

func TestParseDatasetFlattensInDocumentOrder(t *testing.T) {
	ds := parse(t, `[
		[{"yomikata":"いち","word":"一","mean":"one"},{"yomikata":"に","word":"二","mean":"two"}],
		[{"yomikata":"さん","word":"三","mean":"three"}]
	]`)

	if ds.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ds.Len())
	}
	words := make([]string, 0, ds.Len())
	for _, entry := range ds.Entries() {
		words = append(words, entry.Word)
	}
	if got := strings.Join(words, ","); got != "一,二,三" {
		t.Fatalf("unexpected flatten order: %s", got)
	}
	if group, item := ds.Position(2); group != 1 || item != 0 {
		t.Fatalf("unexpected position for third entry: (%d, %d)", group, item)
	}
}

func TestParseDatasetFiltersMalformedElements(t *testing.T) {
	ds := parse(t, `[
		[{"word":"a","yomikata":"あ","mean":"1"}],
		"not a group",
		[{"word":"b","yomikata":"い","mean":"2"}, 17, {"word":"c","yomikata":"う","mean":"3"}],
		{"not":"a group either"}
	]`)

	if ds.Len() != 3 {
		t.Fatalf("expected 3 well-formed records, got %d", ds.Len())
	}
	if got := ds.Entry(1).Word; got != "b" {
		t.Fatalf("expected second record to be b, got %q", got)
	}
	if group, item := ds.Position(2); group != 2 || item != 2 {
		t.Fatalf("filtered positions shifted: (%d, %d)", group, item)
	}
}

func TestParseDatasetNonSequenceDocument(t *testing.T) {
	ds := parse(t, `{"word":"orphan"}`)
	if ds.Len() != 0 {
		t.Fatalf("expected no records, got %d", ds.Len())
	}

	out, err := json.Marshal(ds.Document())
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	if string(out) != `{"word":"orphan"}` {
		t.Fatalf("document not preserved: %s", out)
	}
}

func TestParseDatasetSyntaxError(t *testing.T) {
	if _, err := vocab.ParseDataset([]byte(`[[{"word":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestEntryDefaultsMissingAndNonStringFields(t *testing.T) {
	ds := parse(t, `[[{"word":"犬","yomikata":7}]]`)
	entry := ds.Entry(0)
	if entry.Word != "犬" {
		t.Fatalf("unexpected word: %q", entry.Word)
	}
	if entry.Yomikata != "" {
		t.Fatalf("non-string yomikata should project empty, got %q", entry.Yomikata)
	}
	if entry.Mean != "" {
		t.Fatalf("missing mean should project empty, got %q", entry.Mean)
	}
}

func TestSetMeanWritesThroughToDocument(t *testing.T) {
	ds := parse(t, `[[{"yomikata":"いぬ","word":"犬","mean":"dog","level":1}]]`)
	ds.SetMean(0, "hound")

	if got := ds.Entry(0).Mean; got != "hound" {
		t.Fatalf("flat view did not observe mutation: %q", got)
	}

	out, err := json.Marshal(ds.Document())
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	if !strings.Contains(string(out), `"mean":"hound"`) {
		t.Fatalf("document missing updated mean: %s", out)
	}
	if !strings.Contains(string(out), `"level":1`) {
		t.Fatalf("document lost extra field: %s", out)
	}
}

func TestPartition(t *testing.T) {
	entries := make([]vocab.Entry, 7)
	for i := range entries {
		entries[i] = vocab.Entry{Word: strings.Repeat("x", i+1)}
	}

	chunks := vocab.Partition(entries, 3)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) != 3 {
			t.Fatalf("chunk %d has %d entries, want 3", i, len(chunk))
		}
	}
	if last := chunks[len(chunks)-1]; len(last) != 1 {
		t.Fatalf("last chunk has %d entries, want 1", len(last))
	}

	var joined []vocab.Entry
	for _, chunk := range chunks {
		joined = append(joined, chunk...)
	}
	for i := range entries {
		if joined[i] != entries[i] {
			t.Fatalf("concatenated chunks diverge from input at %d", i)
		}
	}

	if got := vocab.Partition(entries[:6], 3); len(got) != 2 {
		t.Fatalf("exact multiple should produce 2 chunks, got %d", len(got))
	}
	if got := vocab.Partition(entries[:2], 120); len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("undersized input should produce one short chunk, got %v", got)
	}
	if got := vocab.Partition(nil, 3); got != nil {
		t.Fatalf("empty input should produce no chunks, got %v", got)
	}
	if got := vocab.Partition(entries, 0); got != nil {
		t.Fatalf("non-positive size should produce no chunks, got %v", got)
	}
}

func TestEntriesFromSequence(t *testing.T) {
	var doc any
	payload := `[{"word":"a","yomikata":"あ","mean":"x"}, 42, "junk", {"word":"b"}]`
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	entries, ok := vocab.EntriesFromSequence(doc)
	if !ok {
		t.Fatal("expected sequence to be accepted")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 records, got %d", len(entries))
	}
	if entries[1].Word != "b" || entries[1].Mean != "" {
		t.Fatalf("second record projected wrong: %+v", entries[1])
	}

	if err := json.Unmarshal([]byte(`{"word":"a"}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := vocab.EntriesFromSequence(doc); ok {
		t.Fatal("expected non-sequence document to be rejected")
	}
}

func TestKeysMatchNormalizesKana(t *testing.T) {
	composed := vocab.Entry{Word: "馬鹿", Yomikata: "\u3070\u304b"}
	decomposed := vocab.Entry{Word: "馬鹿", Yomikata: "\u306f\u3099\u304b"}
	if !vocab.KeysMatch(composed, decomposed) {
		t.Fatal("canonically equivalent readings should match")
	}

	other := vocab.Entry{Word: "馬", Yomikata: "ばか"}
	if vocab.KeysMatch(composed, other) {
		t.Fatal("different words must not match")
	}

	changedReading := vocab.Entry{Word: "馬鹿", Yomikata: "うま"}
	if vocab.KeysMatch(composed, changedReading) {
		t.Fatal("different readings must not match")
	}
}
