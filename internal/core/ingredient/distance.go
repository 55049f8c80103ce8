package ingredient

import (
	"github.com/agnivade/levenshtein"
)

// Distance returns the Levenshtein edit distance between a and b with unit
// insert/delete/substitute cost. Comparison is case-sensitive; callers
// lowercase first.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns a 0.0-1.0 confidence score between two strings:
// 1.0 - distance/max(len(a), len(b)), measured in runes.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := Distance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
