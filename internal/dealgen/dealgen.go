// Package dealgen generates random deals for benchmarking and ad-hoc
// study, adapted from the teacher deck's shuffle-and-draw discipline but
// seeded for reproducibility (spec §6: "random" subcommand takes a seed).
package dealgen

import (
	"fmt"
	"math/rand"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
)

// ErrInvalidSize reports a deal size outside [1, cards.NumRanks].
var ErrInvalidSize = fmt.Errorf("dealgen: size must be between 1 and %d", cards.NumRanks)

// Generator draws random deals from a seeded shuffle, so a given seed
// always reproduces the same sequence of deals.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded deterministically from seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Deal shuffles a fresh 52-card deck and deals size cards to each of the
// four seats in W, N, E, S order. size must be in [1, 13].
func (g *Generator) Deal(size int) (deal.Hands, error) {
	if size < 1 || size > cards.NumRanks {
		return deal.Hands{}, ErrInvalidSize
	}

	deck := fullDeck()
	g.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	var sets [cards.NumSeats]cards.CardSet
	for seat := 0; seat < cards.NumSeats; seat++ {
		for i := 0; i < size; i++ {
			sets[seat] = sets[seat].Add(deck[seat*size+i])
		}
	}
	return deal.New(sets[cards.West], sets[cards.North], sets[cards.East], sets[cards.South])
}

// DealN draws n independent deals of the given size.
func (g *Generator) DealN(n, size int) ([]deal.Hands, error) {
	out := make([]deal.Hands, 0, n)
	for i := 0; i < n; i++ {
		h, err := g.Deal(size)
		if err != nil {
			return nil, fmt.Errorf("dealgen: deal %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func fullDeck() []cards.Card {
	deck := make([]cards.Card, 0, cards.NumSuits*cards.NumRanks)
	for _, suit := range cards.DisplayOrder {
		for r := cards.Rank(0); r < cards.NumRanks; r++ {
			deck = append(deck, cards.NewCard(r, suit))
		}
	}
	return deck
}
