package grouper

import (
	"sort"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ledgerline/payee-resolver/internal/domain/payee/normalizer"
)

// PayeeMatcher ranks a candidate name against already-known payees.
// Implementations return matches sorted descending by score, all scores in
// [threshold, 1], at most limit entries.
type PayeeMatcher interface {
	FindPotentialMatches(name string, candidates []Payee, threshold float64, limit int) []RankedMatch
}

// FuzzyMatcher is the default PayeeMatcher. An Aho-Corasick pass first finds
// candidates whose whole normalized name occurs inside the statement string
// ("Netflix" inside "NETFLIX COM"); those are exact hits and score 1. The
// rest fall through to fuzzy scoring, which blends the grouping similarity
// with a subsequence rank signal.
type FuzzyMatcher struct{}

var _ PayeeMatcher = FuzzyMatcher{}

// FindPotentialMatches implements PayeeMatcher.
func (FuzzyMatcher) FindPotentialMatches(name string, candidates []Payee, threshold float64, limit int) []RankedMatch {
	normalized := normalizer.NormalizePayeeName(name)
	if normalized == "" || len(candidates) == 0 {
		return nil
	}

	normalizedNames := make([]string, len(candidates))
	for i, candidate := range candidates {
		normalizedNames[i] = normalizer.NormalizePayeeName(candidate.Name)
	}
	exact := containedCandidates(normalized, normalizedNames)

	matches := make([]RankedMatch, 0, len(candidates))
	for i, candidate := range candidates {
		score := 1.0
		if !exact[i] {
			score = matchScore(normalized, normalizedNames[i])
		}
		if score >= threshold {
			matches = append(matches, RankedMatch{Payee: candidate, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Payee.ID < matches[j].Payee.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// containedCandidates reports, per candidate, whether its whole normalized
// name occurs inside name. The candidate names are compiled into one
// Aho-Corasick automaton so the scan over the statement string is a single
// pass regardless of how many payees the workspace knows.
func containedCandidates(name string, normalizedNames []string) []bool {
	patterns := make([][]byte, 0, len(normalizedNames))
	owners := make([][]int, 0, len(normalizedNames))
	index := make(map[string]int, len(normalizedNames))
	for i, n := range normalizedNames {
		if n == "" {
			continue
		}
		idx, ok := index[n]
		if !ok {
			idx = len(patterns)
			index[n] = idx
			patterns = append(patterns, []byte(n))
			owners = append(owners, nil)
		}
		owners[idx] = append(owners[idx], i)
	}

	contained := make([]bool, len(normalizedNames))
	if len(patterns) == 0 {
		return contained
	}
	for _, hit := range ahocorasick.NewMatcher(patterns).Match([]byte(name)) {
		for _, i := range owners[hit] {
			contained[i] = true
		}
	}
	return contained
}

// matchScore takes the better of the blended similarity and a rank-based
// subsequence score, clamped to [0,1].
func matchScore(name, candidate string) float64 {
	if candidate == "" {
		return 0
	}

	score := Similarity(name, candidate)
	if rankScore := subsequenceScore(name, candidate); rankScore > score {
		score = rankScore
	}
	if score > 1 {
		return 1
	}
	return score
}

// subsequenceScore scores candidate as a fuzzy subsequence of name. An
// earlier match position means the candidate covers the head of the
// statement string and scores higher.
func subsequenceScore(name, candidate string) float64 {
	rank := fuzzy.RankMatchFold(candidate, name)
	if rank < 0 || len(name) == 0 {
		return 0
	}
	coverage := float64(len(candidate)) / float64(len(name))
	if coverage > 1 {
		coverage = 1
	}
	// Full containment gets up to 0.9; the rank (edit distance between the
	// pattern and its match window) pulls the score down.
	score := 0.9*coverage - float64(rank)/float64(len(name))*0.3
	if score < 0 {
		return 0
	}
	return score
}
