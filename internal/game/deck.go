package game

import (
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/unsalatasoy/wordmatch/internal/models"
)

// pairsPerDeck bounds how many catalog pairs a single deck uses. Eight pairs
// yield the standard 16-card board.
const pairsPerDeck = 8

// GenerateDeck builds a shuffled face-down deck for the given relation. The
// catalog is filtered to the relation and the first pairsPerDeck entries are
// used in catalog order; each pair contributes two cards tagged with the same
// pair id. A short catalog yields a smaller deck, so callers must not assume
// 16 cards.
func GenerateDeck(relation models.Relation) []*models.Card {
	pairs := lo.Filter(wordCatalog, func(p models.WordPair, _ int) bool {
		return p.Relation == relation
	})
	if len(pairs) > pairsPerDeck {
		pairs = pairs[:pairsPerDeck]
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return buildDeck(pairs, r)
}

// buildDeck lays out two cards per pair (sequence ids 2k and 2k+1 for pair k)
// and applies an unbiased Fisher-Yates shuffle from the provided source.
func buildDeck(pairs []models.WordPair, r *rand.Rand) []*models.Card {
	cards := make([]*models.Card, 0, len(pairs)*2)
	for k, pair := range pairs {
		cards = append(cards,
			&models.Card{SequenceID: k * 2, Word: pair.WordA, PairID: k},
			&models.Card{SequenceID: k*2 + 1, Word: pair.WordB, PairID: k},
		)
	}
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}
