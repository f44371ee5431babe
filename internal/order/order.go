// Package order produces the candidate-move sequence the solver walks at
// each node (spec §4.6): sure winners first, then safe non-trump losers,
// then the rest, chosen to maximize alpha-beta pruning.
package order

import (
	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/game"
	"github.com/bran/ddsolve/internal/trick"
)

// Candidates returns the ordered sequence of cards the mover at g should
// try, one entry per pruned-equivalence class of ValidPlays (spec §4.6's
// permutation contract).
func Candidates(g *game.State) []cards.Card {
	removed := notInAnyHand(g)
	valid := g.ValidPlays()
	pool := valid.PruneEquivalent(removed)

	var listed cards.CardSet
	out := make([]cards.Card, 0, pool.Count())
	emit := func(c cards.Card) {
		if pool.Contains(c) && !listed.Contains(c) {
			listed = listed.Add(c)
			out = append(out, c)
		}
	}

	if g.StartOfTrick() {
		orderLead(g, pool, emit)
	} else {
		orderFollow(g, pool, emit)
	}

	for _, c := range pool.IterLowest() {
		emit(c)
	}
	return out
}

// orderLead implements the "trick has not started" branch of spec §4.6:
// first every global top card we hold, then our lowest card in each suit
// where partner holds the global top. It does no overruff or length-trick
// analysis; Candidates appends the remaining plays low-to-high.
func orderLead(g *game.State, pool cards.CardSet, emit func(cards.Card)) {
	hands := g.Hands()
	me := g.NextSeat()
	partner := me.Partner()
	suits := suitOrder(g.Trump())

	for _, s := range suits {
		top, ok := hands.All().IntersectSuit(s).Highest()
		if !ok {
			continue
		}
		if hands[me].Contains(top) {
			emit(top)
		}
	}
	for _, s := range suits {
		top, ok := hands.All().IntersectSuit(s).Highest()
		if !ok || !hands[partner].Contains(top) {
			continue
		}
		if low, ok := pool.IntersectSuit(s).Lowest(); ok {
			emit(low)
		}
	}
}

// orderFollow implements the "trick in progress" branch of spec §4.6:
// sure winners low-to-high, then safe non-trump losers low-to-high.
func orderFollow(g *game.State, pool cards.CardSet, emit func(cards.Card)) {
	trump := g.Trump()
	leadSuit := g.CurrentTrick().LeadSuit()

	for _, c := range pool.IterLowest() {
		if isSureWinner(g, c, leadSuit, trump) {
			emit(c)
		}
	}
	if !trump.IsNoTrump() {
		for _, c := range pool.IterLowest() {
			if c.Suit != trump.Suit() && c.Suit != leadSuit {
				emit(c)
			}
		}
	}
}

// isSureWinner reports whether playing c now would beat the current
// winning card of the trick (if any) and every remaining un-played seat's
// best possible response, given they must follow suit if able and may
// otherwise ruff.
func isSureWinner(g *game.State, c cards.Card, leadSuit cards.Suit, trump cards.TrumpSuit) bool {
	candVal := trick.CardValue(trump, leadSuit, c)
	t := g.CurrentTrick()
	if t.Size() > 0 && candVal <= trick.CardValue(trump, leadSuit, t.CurrentWinningCard()) {
		return false
	}

	played := make(map[cards.Seat]bool, t.Size())
	for _, p := range t.Plays() {
		played[p.Seat] = true
	}

	hands := g.Hands()
	for s := cards.Seat(0); s < cards.NumSeats; s++ {
		if s == g.NextSeat() || played[s] {
			continue
		}
		if bestResponseValue(hands[s], leadSuit, trump) >= candVal {
			return false
		}
	}
	return true
}

// bestResponseValue returns the best cardValue a seat holding hand could
// achieve if forced to respond to leadSuit: they must follow suit if
// able, and may otherwise ruff with their best trump or discard (value 0).
func bestResponseValue(hand cards.CardSet, leadSuit cards.Suit, trump cards.TrumpSuit) int {
	inSuit := hand.IntersectSuit(leadSuit)
	if hi, ok := inSuit.Highest(); ok {
		return trick.CardValue(trump, leadSuit, hi)
	}
	if !trump.IsNoTrump() && leadSuit != trump.Suit() {
		if hi, ok := hand.IntersectSuit(trump.Suit()).Highest(); ok {
			return trick.CardValue(trump, leadSuit, hi)
		}
	}
	return 0
}

// suitOrder returns trump first (if any), then the rest in display order.
func suitOrder(trump cards.TrumpSuit) []cards.Suit {
	out := make([]cards.Suit, 0, cards.NumSuits)
	if !trump.IsNoTrump() {
		out = append(out, trump.Suit())
	}
	for _, s := range cards.DisplayOrder {
		if !trump.IsNoTrump() && s == trump.Suit() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// notInAnyHand returns the cards no longer held by anyone: gone to
// completed tricks. The current partial trick's cards are still "in
// play" for pruning purposes since they constrain who can beat whom.
func notInAnyHand(g *game.State) cards.CardSet {
	inPlay := g.Hands().All().Union(g.CurrentTrick().AllCards())
	return cards.Full.Diff(inPlay)
}
