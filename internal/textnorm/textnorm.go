// Package textnorm provides the text normalization used for fuzzy matching
// of catalog slugs, labels, and headings.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical matching form of s: trimmed, lowercased,
// with diacritics stripped ("Částice Hmoty" -> "castice hmoty").
// Normalize is idempotent.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	stripped, _, err := transform.String(stripMarks(), s)
	if err == nil {
		s = stripped
	}
	return strings.ToLower(s)
}

// stripMarks builds a transformer that decomposes characters and removes
// combining marks. Built per call: chained transformers carry state and are
// not safe for concurrent use.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slugify converts s into a URL-safe slug ("Částice hmoty" -> "castice-hmoty").
func Slugify(s string) string {
	return slug.Make(s)
}
