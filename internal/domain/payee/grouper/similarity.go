package grouper

import "strings"

// Blend weights for the pairwise similarity score. Calibration constants:
// the grouping behavior of the whole pipeline depends on them.
const (
	levenshteinWeight = 0.6
	wordOverlapWeight = 0.3
	substringBonus    = 0.1
)

// Similarity computes a bounded [0,1] similarity between two normalized
// payee strings. Equal strings score 1, an empty operand scores 0, and
// everything else blends edit-distance similarity, word overlap and a
// full-containment bonus.
func Similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	score := levenshteinWeight*levenshteinSimilarity(a, b) +
		wordOverlapWeight*wordOverlap(a, b)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		score += substringBonus
	}
	if score > 1 {
		return 1
	}
	return score
}

// levenshteinSimilarity converts edit distance into a [0,1] similarity:
// 1 - distance/maxLen.
func levenshteinSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(levenshteinDistance(ra, rb))/float64(maxLen)
}

// wordOverlap is |words(a) ∩ words(b)| / max(|words(a)|, |words(b)|) over
// whitespace-split token sets.
func wordOverlap(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	shared := 0
	for w := range wordsA {
		if wordsB[w] {
			shared++
		}
	}

	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	return float64(shared) / float64(denom)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(s)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// levenshteinDistance is the classic two-row edit distance over runes.
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
