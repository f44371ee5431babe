package order

import (
	"testing"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
	"github.com/bran/ddsolve/internal/game"
)

func c(r cards.Rank, s cards.Suit) cards.Card { return cards.NewCard(r, s) }

func fourHand(t *testing.T) deal.Hands {
	t.Helper()
	w := cards.Of(c(cards.King, cards.Spades), c(cards.Two, cards.Hearts), c(cards.Four, cards.Clubs))
	n := cards.Of(c(cards.Ace, cards.Spades), c(cards.King, cards.Hearts), c(cards.Three, cards.Clubs))
	e := cards.Of(c(cards.Queen, cards.Spades), c(cards.Queen, cards.Hearts), c(cards.Two, cards.Clubs))
	s := cards.Of(c(cards.Jack, cards.Spades), c(cards.Jack, cards.Hearts), c(cards.Five, cards.Clubs))
	h, err := deal.New(w, n, e, s)
	if err != nil {
		t.Fatalf("deal.New() error = %v", err)
	}
	return h
}

func TestCandidatesIsPermutationOfPrunedValidPlays(t *testing.T) {
	g := game.New(cards.Trump(cards.Hearts), cards.South, fourHand(t))

	var walk func(depth int)
	walk = func(depth int) {
		if g.Finished() || depth == 0 {
			return
		}
		removed := cards.Full.Diff(g.Hands().All().Union(g.CurrentTrick().AllCards()))
		want := g.ValidPlays().PruneEquivalent(removed)

		got := Candidates(g)
		if len(got) != want.Count() {
			t.Fatalf("Candidates() length = %d, want %d (pruned valid plays = %v)", len(got), want.Count(), want)
		}
		seen := map[cards.Card]bool{}
		for _, card := range got {
			if seen[card] {
				t.Fatalf("Candidates() repeated %v", card)
			}
			seen[card] = true
			if !want.Contains(card) {
				t.Fatalf("Candidates() returned %v which is not a pruned valid play", card)
			}
		}

		for _, card := range got {
			g.Play(card)
			walk(depth - 1)
			g.Unplay()
		}
	}
	walk(3)
}

func TestOrderLeadsSureWinnerFirst(t *testing.T) {
	h := deal.Hands{}
	h[cards.South] = cards.Of(c(cards.Ace, cards.Spades), c(cards.Two, cards.Clubs))
	h[cards.West] = cards.Of(c(cards.King, cards.Spades), c(cards.Three, cards.Clubs))
	h[cards.North] = cards.Of(c(cards.Two, cards.Spades), c(cards.Four, cards.Clubs))
	h[cards.East] = cards.Of(c(cards.Queen, cards.Spades), c(cards.Five, cards.Clubs))

	g := game.New(cards.NoTrump, cards.West, h) // lead = North... we want South on lead
	_ = g
	g2 := game.New(cards.NoTrump, cards.East, h) // declarer East -> lead South
	got := Candidates(g2)
	if len(got) == 0 || got[0] != c(cards.Ace, cards.Spades) {
		t.Fatalf("Candidates()[0] = %v, want AS (the global top)", got)
	}
}
