package vocab

import "golang.org/x/text/unicode/norm"

// KeysMatch reports whether two entries refer to the same vocabulary item.
// Word and reading are compared after NFC normalization; a resave in
// decomposed form (kana with combining voicing marks) does not change an
// entry's identity.
func KeysMatch(a, b Entry) bool {
	return norm.NFC.String(a.Word) == norm.NFC.String(b.Word) &&
		norm.NFC.String(a.Yomikata) == norm.NFC.String(b.Yomikata)
}
