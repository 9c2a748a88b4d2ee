// Package fuzzy implements approximate string matching for doctor-name and
// symptom-keyword resolution. Scores follow the Ratcliff/Obershelp gestalt
// ratio: twice the number of matching characters over the combined length,
// with matches found recursively around the longest common substring.
package fuzzy

import "strings"

// Similarity returns the Ratcliff/Obershelp ratio of a and b on a 0-1 scale.
// Comparison is case-insensitive and whitespace-trimmed.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return float64(2*matchedRunes(ra, rb)) / float64(len(ra)+len(rb))
}

// Ratio returns the same score on the 0-100 scale used for doctor names.
func Ratio(a, b string) int {
	return int(Similarity(a, b) * 100)
}

// BestMatch returns the candidate with the highest Ratio against query,
// provided it clears minScore. The bool reports whether any candidate did.
func BestMatch(query string, candidates []string, minScore int) (string, int, bool) {
	best := ""
	bestScore := -1
	for _, c := range candidates {
		if score := Ratio(query, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < minScore {
		return "", 0, false
	}
	return best, bestScore, true
}

// ClosestMatch is BestMatch on the 0-1 scale, used for symptom keywords.
func ClosestMatch(query string, candidates []string, cutoff float64) (string, float64, bool) {
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		if score := Similarity(query, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < cutoff {
		return "", 0, false
	}
	return best, bestScore, true
}

// matchedRunes counts matching characters: the longest common substring plus,
// recursively, the matches in the unmatched regions on either side of it.
func matchedRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedRunes(a[:ai], b[:bi]) +
		matchedRunes(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	// prev[j] holds the run length ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
