// similarity.go implements the text-similarity measure shared by the
// cross-reference and duplicate checks: token-set Jaccard over normalized,
// accent-folded tokens. Jaccard was chosen over edit-distance ratios because
// tips paraphrase freely (word order changes, filler words) while reusing the
// same content words; the thresholds live in config, not here.
package verifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips diacritical marks so "Montréal" and "Montreal"
// tokenize identically.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lowercases, folds accents, and replaces non-alphanumeric
// runes with spaces, preserving word boundaries.
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	if folded, _, err := transform.String(foldTransformer, text); err == nil {
		text = folded
	}

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}
	return result.String()
}

// Tokenize splits text into normalized tokens.
func Tokenize(text string) []string {
	return strings.Fields(NormalizeText(text))
}

// tokenSet builds the unique token set of a text.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// TokenSetJaccard returns intersection-over-union of the unique token sets
// of the two texts. Two empty texts are identical (1); one empty text
// matches nothing (0).
func TokenSetJaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
