// Package fasttricks implements the one-shot, non-recursive lower-bound
// estimator on tricks obtainable by cashing winners (spec §4.5): a
// partnership runs a suit from the top, alternating which partner the run
// ends in ("end in hand" vs. "end in partner's hand"), stopping a suit the
// moment it is blocked, an opponent can ruff it, or the partner lacks a
// safe discard to pitch on the last trick of an "end in hand" run.
package fasttricks

import (
	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
)

// Estimate computes, for side (the seat to move; its partner shares the
// same partnership), a lower bound on the tricks that partnership can
// immediately cash against any defense, plus the winners-by-rank set
// generated along the way (spec §4.5 step 4).
func Estimate(hands deal.Hands, side cards.Seat, trump cards.TrumpSuit) (tricks int, winnersByRank cards.CardSet) {
	m := newMiniSolver(hands, side, trump)
	return m.solve()
}

// miniSolver mirrors a single partnership's top-down cashout search: it
// repeatedly finds a suit the partnership can run to a safe conclusion and
// plays it out in place, swapping which partner is "me" whenever a run
// ends in the partner's hand instead of the mover's own.
type miniSolver struct {
	trump cards.TrumpSuit
	suits []cards.Suit // every suit except trump, in display order

	hands   deal.Hands
	removed cards.CardSet // cards no longer held by anyone

	nonTrumps [cards.NumSeats]int // non-trump cards remaining per seat

	me, pa, lho, rho cards.Seat

	winnersByRank cards.CardSet
	tricksTaken   int
}

func newMiniSolver(hands deal.Hands, me cards.Seat, trump cards.TrumpSuit) *miniSolver {
	m := &miniSolver{
		trump:   trump,
		hands:   hands,
		removed: cards.Full.Diff(hands.All()),
		me:      me,
		lho:     me.LHO(),
		pa:      me.Partner(),
		rho:     me.Partner().LHO(),
	}
	for _, s := range cards.DisplayOrder {
		if trump.IsNoTrump() || s != trump.Suit() {
			m.suits = append(m.suits, s)
		}
	}
	var trumps cards.CardSet
	if !trump.IsNoTrump() {
		trumps = cards.Full.IntersectSuit(trump.Suit())
	}
	for seat := cards.Seat(0); seat < cards.NumSeats; seat++ {
		m.nonTrumps[seat] = hands[seat].Diff(trumps).Count()
	}
	return m
}

// solve runs every safe run to exhaustion: within one "end in hand" phase
// it repeats trump then every side suit until none progress, then tries one
// "end in partner" trump trick (restarting the whole phase on success,
// since that swaps which seat is "me"), then one "end in partner" side-suit
// trick per outer pass.
func (m *miniSolver) solve() (int, cards.CardSet) {
outer:
	for {
		progress := false

		if !m.trump.IsNoTrump() {
			for m.tryTrick(m.trump.Suit(), true) {
				progress = true
			}
		}
		for _, suit := range m.suits {
			for m.tryTrick(suit, true) {
				progress = true
			}
		}

		if !m.trump.IsNoTrump() {
			if m.tryTrick(m.trump.Suit(), false) {
				continue outer
			}
		}
		for _, suit := range m.suits {
			if m.tryTrick(suit, false) {
				progress = true
				break
			}
		}

		if !progress {
			break
		}
	}

	return m.tricksTaken, m.winnersByRank
}

// tryTrick attempts to cash one trick of suit ending in me's hand
// (endInHand) or partner's hand, returning whether it succeeded. A ruffable
// suit, a suit blocked by a rank gap between the two hands, or (for
// end-in-hand runs) a partner with nothing safe to discard all refuse the
// trick.
func (m *miniSolver) tryTrick(suit cards.Suit, endInHand bool) bool {
	dest := m.pa
	if endInHand {
		dest = m.me
	}

	if m.isVoid(m.me, suit) {
		return false
	}
	if !m.hasHighCard(dest, suit) {
		return false
	}
	if m.isBlocked(suit, endInHand) {
		return false
	}
	if m.canRuff(m.lho, suit) || m.canRuff(m.rho, suit) {
		return false
	}
	if endInHand && !m.hasSufficientDiscards(m.pa, suit) {
		return false
	}

	lhoVoid := m.isVoid(m.lho, suit)
	rhoVoid := m.isVoid(m.rho, suit)
	paVoid := m.isVoid(m.pa, suit)

	if winsByRank := !lhoVoid || !rhoVoid || !paVoid; winsByRank {
		high, _ := m.hands[dest].HighestInSuit(suit)
		low := m.hands[dest].LowestEquivalent(high, m.removed)
		m.winnersByRank = m.winnersByRank.Union(cards.Full.HigherRankingOrEq(low))
	}

	if !lhoVoid {
		m.playLow(m.lho, suit)
	}
	if !rhoVoid {
		m.playLow(m.rho, suit)
	}

	if endInHand {
		m.playHigh(m.me, suit)
		m.playLowOrDiscard(m.pa, suit)
	} else {
		m.playLow(m.me, suit)
		m.playHigh(m.pa, suit)
		m.me, m.pa = m.pa, m.me
		m.lho, m.rho = m.rho, m.lho
	}

	m.tricksTaken++
	return true
}

func (m *miniSolver) isVoid(seat cards.Seat, suit cards.Suit) bool {
	return m.hands[seat].IntersectSuit(suit).Empty()
}

// isBlocked reports whether running suit toward dest would require a seat
// to play a card lower-ranked than one it has already played: a gap
// between the mover's and partner's holdings that an unbroken top-down run
// can't cross.
func (m *miniSolver) isBlocked(suit cards.Suit, endInHand bool) bool {
	if endInHand {
		high, ok := m.hands[m.me].HighestInSuit(suit)
		low, paOk := m.hands[m.pa].LowestInSuit(suit)
		return ok && paOk && high.Rank < low.Rank
	}
	high, ok := m.hands[m.pa].HighestInSuit(suit)
	low, meOk := m.hands[m.me].LowestInSuit(suit)
	return ok && meOk && high.Rank < low.Rank
}

func (m *miniSolver) canRuff(seat cards.Seat, suit cards.Suit) bool {
	return !m.trump.IsNoTrump() && suit != m.trump.Suit() &&
		m.isVoid(seat, suit) && !m.isVoid(seat, m.trump.Suit())
}

func (m *miniSolver) hasSufficientDiscards(seat cards.Seat, suit cards.Suit) bool {
	return (!m.trump.IsNoTrump() && suit == m.trump.Suit()) || !m.isVoid(seat, suit) || m.nonTrumps[seat] > 0
}

// hasHighCard reports whether seat holds the current overall-highest card
// of suit across all four hands.
func (m *miniSolver) hasHighCard(seat cards.Seat, suit cards.Suit) bool {
	high, ok := m.hands[seat].HighestInSuit(suit)
	if !ok {
		return false
	}
	global, _ := m.hands.All().HighestInSuit(suit)
	return high.Rank >= global.Rank
}

func (m *miniSolver) playHigh(seat cards.Seat, suit cards.Suit) {
	c, _ := m.hands[seat].HighestInSuit(suit)
	m.play(seat, c)
}

func (m *miniSolver) playLow(seat cards.Seat, suit cards.Suit) {
	c, _ := m.hands[seat].LowestInSuit(suit)
	m.play(seat, c)
}

func (m *miniSolver) play(seat cards.Seat, c cards.Card) {
	m.hands = m.hands.Remove(seat, c)
	m.removed = m.removed.Add(c)
	if m.trump.IsNoTrump() || c.Suit != m.trump.Suit() {
		m.nonTrumps[seat]--
	}
}

// playLowOrDiscard plays seat's lowest card of suit, or if seat is void in
// suit, discards its cheapest safe card from elsewhere (spec §4.5 step 5:
// the partner must have somewhere to put a card on the last trick of an
// end-in-hand run).
func (m *miniSolver) playLowOrDiscard(seat cards.Seat, suit cards.Suit) {
	if !m.isVoid(seat, suit) {
		m.playLow(seat, suit)
		return
	}
	m.playDiscard(seat, suit)
}

// playDiscard pitches seat's cheapest card from a suit other than suit,
// preferring to preserve trumps unless suit itself is trump.
func (m *miniSolver) playDiscard(seat cards.Seat, suit cards.Suit) {
	best, bestFound := cards.Suit(0), false
	var bestLow cards.Card
	for _, disc := range cards.DisplayOrder {
		if disc == suit {
			continue
		}
		if !m.trump.IsNoTrump() && disc == m.trump.Suit() && suit != m.trump.Suit() {
			continue
		}
		low, ok := m.hands[seat].LowestInSuit(disc)
		if !ok {
			continue
		}
		if !bestFound || low.Rank < bestLow.Rank {
			best, bestLow, bestFound = disc, low, true
		}
	}
	m.playLow(seat, best)
}
