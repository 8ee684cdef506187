// internal/game/deck_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsalatasoy/wordmatch/internal/models"
)

func TestGenerateDeckPairing(t *testing.T) {
	for _, relation := range []models.Relation{models.RelationSynonym, models.RelationAntonym} {
		t.Run(string(relation), func(t *testing.T) {
			deck := GenerateDeck(relation)
			require.Len(t, deck, pairsPerDeck*2)

			pairCounts := map[int]int{}
			seqSeen := map[int]bool{}
			for _, c := range deck {
				pairCounts[c.PairID]++
				assert.False(t, c.FaceUp, "cards start face down")
				assert.False(t, c.Matched, "cards start unmatched")
				assert.Nil(t, c.MatchedBy)
				assert.NotEmpty(t, c.Word)
				assert.False(t, seqSeen[c.SequenceID], "duplicate sequence id %d", c.SequenceID)
				seqSeen[c.SequenceID] = true
			}
			require.Len(t, pairCounts, pairsPerDeck)
			for pairID, n := range pairCounts {
				assert.Equal(t, 2, n, "pair %d should appear exactly twice", pairID)
			}
		})
	}
}

// A relation with fewer than pairsPerDeck pairs must still produce a valid,
// smaller deck rather than fail.
func TestBuildDeckShortCatalog(t *testing.T) {
	pairs := []models.WordPair{
		{WordA: "sıcak", WordB: "soğuk", Relation: models.RelationAntonym},
		{WordA: "uzun", WordB: "kısa", Relation: models.RelationAntonym},
	}
	deck := buildDeck(pairs, rand.New(rand.NewSource(1)))
	require.Len(t, deck, 4)

	partners := map[int][]string{}
	for _, c := range deck {
		partners[c.PairID] = append(partners[c.PairID], c.Word)
	}
	require.Len(t, partners, 2)
	assert.ElementsMatch(t, []string{"sıcak", "soğuk"}, partners[0])
	assert.ElementsMatch(t, []string{"uzun", "kısa"}, partners[1])
}

// Two pairs give 4! = 24 permutations; with a fair shuffle each should show
// up roughly trials/24 times. A biased shuffle skews individual counts far
// beyond the tolerance used here.
func TestShuffleUniformity(t *testing.T) {
	pairs := []models.WordPair{
		{WordA: "a", WordB: "b", Relation: models.RelationSynonym},
		{WordA: "c", WordB: "d", Relation: models.RelationSynonym},
	}
	r := rand.New(rand.NewSource(42))

	const trials = 24000
	counts := map[[4]int]int{}
	for i := 0; i < trials; i++ {
		deck := buildDeck(pairs, r)
		var perm [4]int
		for j, c := range deck {
			perm[j] = c.SequenceID
		}
		counts[perm]++
	}

	require.Len(t, counts, 24, "every permutation should occur")
	expected := float64(trials) / 24
	for perm, n := range counts {
		assert.InDelta(t, expected, float64(n), expected*0.15, "permutation %v skewed", perm)
	}
}
