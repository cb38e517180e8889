package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyMatcherExactMatch(t *testing.T) {
	matches := FuzzyMatcher{}.FindPotentialMatches(
		"Netflix",
		[]Payee{{ID: 1, Name: "Netflix"}},
		0.7, 5,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].Payee.ID)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestFuzzyMatcherNormalizesBothSides(t *testing.T) {
	// Statement noise on the query side and casing on the candidate side
	// both disappear before scoring.
	matches := FuzzyMatcher{}.FindPotentialMatches(
		"POS ACME SERVICES #12",
		[]Payee{{ID: 4, Name: "acme services"}},
		0.7, 5,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(4), matches[0].Payee.ID)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestFuzzyMatcherExactContainment(t *testing.T) {
	// A known payee name occurring whole inside the statement string is an
	// exact hit and outranks every fuzzy score.
	matches := FuzzyMatcher{}.FindPotentialMatches(
		"NETFLIX.COM 855 1234567",
		[]Payee{
			{ID: 3, Name: "Netflix"},
			{ID: 9, Name: "Spotify"},
		},
		0.7, 5,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(3), matches[0].Payee.ID)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestFuzzyMatcherThreshold(t *testing.T) {
	// "acme servicez" against "acme services" scores ~0.70, "target" does
	// not come close.
	matches := FuzzyMatcher{}.FindPotentialMatches(
		"Acme Services",
		[]Payee{
			{ID: 1, Name: "Acme Servicez"},
			{ID: 2, Name: "Target"},
		},
		0.7, 5,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].Payee.ID)
	assert.InDelta(t, 0.7038462, matches[0].Score, 1e-6)
}

func TestFuzzyMatcherSortsAndLimits(t *testing.T) {
	candidates := []Payee{
		{ID: 3, Name: "Starbucks Coffee"},
		{ID: 1, Name: "Starbucks"},
		{ID: 2, Name: "Starbucks"},
	}

	matches := FuzzyMatcher{}.FindPotentialMatches("Starbucks", candidates, 0.5, 2)

	require.Len(t, matches, 2)
	// Exact matches first, equal scores ordered by payee ID.
	assert.Equal(t, int64(1), matches[0].Payee.ID)
	assert.Equal(t, int64(2), matches[1].Payee.ID)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestFuzzyMatcherEmptyInputs(t *testing.T) {
	assert.Nil(t, FuzzyMatcher{}.FindPotentialMatches("", []Payee{{ID: 1, Name: "Netflix"}}, 0.7, 5))
	assert.Nil(t, FuzzyMatcher{}.FindPotentialMatches("Netflix", nil, 0.7, 5))
	assert.Nil(t, FuzzyMatcher{}.FindPotentialMatches("###", []Payee{{ID: 1, Name: "Netflix"}}, 0.7, 5))
}

func TestSubsequenceScore(t *testing.T) {
	// "netflix" fully contained in "netflix com": coverage 7/11 minus the
	// rank penalty for the trailing characters.
	score := subsequenceScore("netflix com", "netflix")
	assert.Greater(t, score, 0.4)
	assert.Less(t, score, 0.9)

	assert.Equal(t, 0.0, subsequenceScore("netflix com", "spotify"))
}
