// Package textutils provides text repair helpers for export data.
package textutils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// FixEncoding repairs text that was decoded as Latin-1 although the bytes
// were UTF-8, the classic "MÃ¼nchen" mojibake in CardMarket exports. It
// re-encodes the string as Latin-1 and re-decodes the bytes as UTF-8.
//
// This is a heuristic, inherently lossy transform: if the string contains
// runes outside Latin-1, or the recovered bytes are not valid UTF-8, the
// input is returned unchanged. It never fails.
func FixEncoding(text string) string {
	if text == "" {
		return text
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return text
	}
	if !utf8.ValidString(encoded) {
		return text
	}
	return encoded
}

// CleanSpace trims surrounding whitespace and collapses inner runs of
// whitespace to a single space.
func CleanSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
