package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, removes combining marks, and recomposes.
// "Lycée" and "Lycee" must hit the same vocabulary entry.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold canonicalises free text for vocabulary matching: accents removed,
// lower-cased, surrounding whitespace trimmed.
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// foldKeys rebuilds a code table keyed by folded vocabulary entries.
func foldKeys(table map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(table))
	for k, v := range table {
		out[Fold(k)] = v
	}
	return out
}
