package grouper

import (
	"github.com/ledgerline/payee-resolver/internal/domain/payee/normalizer"
)

// nameCandidate tracks one normalized key in a cluster's frequency table.
type nameCandidate struct {
	count           int
	shortestCleaned string
}

// selectCanonicalName picks the display name for a cluster. The most
// frequent normalized key wins and shorter keys break ties (count·10 −
// len(key)); the shortest cleaned original behind the winning key is then
// run through smart capitalization. A lexicographic tie-break keeps the
// choice stable for a fixed input order.
func selectCanonicalName(members []normalizedRow) string {
	if len(members) == 0 {
		return ""
	}

	table := make(map[string]*nameCandidate, len(members))
	keys := make([]string, 0, len(members))
	for _, m := range members {
		display := m.cleanedPayee
		if display == "" {
			display = m.OriginalPayee
		}
		entry, ok := table[m.normalizedPayee]
		if !ok {
			table[m.normalizedPayee] = &nameCandidate{count: 1, shortestCleaned: display}
			keys = append(keys, m.normalizedPayee)
			continue
		}
		entry.count++
		if len(display) < len(entry.shortestCleaned) {
			// Shorter original means less transaction noise.
			entry.shortestCleaned = display
		}
	}

	bestKey := ""
	bestScore := 0
	for _, key := range keys {
		score := table[key].count*10 - len(key)
		if bestKey == "" || score > bestScore || (score == bestScore && key < bestKey) {
			bestKey = key
			bestScore = score
		}
	}

	return normalizer.SmartCapitalize(table[bestKey].shortestCleaned)
}

// clusterConfidence is 1 for a singleton and otherwise the mean pairwise
// similarity across all member pairs.
func clusterConfidence(members []normalizedRow) float64 {
	n := len(members)
	if n <= 1 {
		return 1
	}

	total := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += Similarity(members[i].normalizedPayee, members[j].normalizedPayee)
			pairs++
		}
	}
	return total / float64(pairs)
}
