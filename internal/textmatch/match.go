// Package textmatch scores extracted OCR text against an expected
// reference: a normalized similarity plus word and character error rates.
package textmatch

import (
	"strings"

	"github.com/arbovm/levenshtein"
	"github.com/codycollier/wer"
)

// Similarity returns a score in [0, 1] comparing the two texts after
// whitespace normalization and case folding. 1 means an exact match.
func Similarity(expected, actual string) float64 {
	ref := normalize(expected)
	hyp := normalize(actual)
	if ref == "" && hyp == "" {
		return 1
	}
	longest := max(len([]rune(ref)), len([]rune(hyp)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.Distance(ref, hyp)
	score := 1 - float64(dist)/float64(longest)
	if score < 0 {
		return 0
	}
	return score
}

// CharErrorRate is the character-level edit distance divided by the length
// of the reference. An empty reference with non-empty hypothesis rates 1.
func CharErrorRate(expected, actual string) float64 {
	ref := normalize(expected)
	hyp := normalize(actual)
	refLen := len([]rune(ref))
	if refLen == 0 {
		if hyp == "" {
			return 0
		}
		return 1
	}
	return float64(levenshtein.Distance(ref, hyp)) / float64(refLen)
}

// WordErrorRate is the word-level edit distance divided by the number of
// reference words.
func WordErrorRate(expected, actual string) float64 {
	ref := strings.Fields(normalize(expected))
	hyp := strings.Fields(normalize(actual))
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 1
	}
	rate, _ := wer.WER(ref, hyp)
	return rate
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
