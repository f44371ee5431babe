// Package deal holds the four players' hands and the invariants that must
// hold across a game in play.
package deal

import (
	"fmt"

	"github.com/bran/ddsolve/internal/cards"
)

// Hands holds one CardSet per seat. While a game is in play the four sets
// are pairwise disjoint and their union plus the cards already played
// equals the original deal universe.
type Hands [cards.NumSeats]cards.CardSet

// New builds a Hands from four per-seat card sets, validating the
// invariants from spec §3: equal size and pairwise disjoint.
func New(w, n, e, s cards.CardSet) (Hands, error) {
	h := Hands{cards.West: w, cards.North: n, cards.East: e, cards.South: s}
	if err := h.Validate(); err != nil {
		return Hands{}, err
	}
	return h, nil
}

// Validate checks the invariants of spec §3: all four hands are the same
// size, and pairwise disjoint.
func (h Hands) Validate() error {
	size := h[cards.West].Count()
	for seat := cards.Seat(0); seat < cards.NumSeats; seat++ {
		if h[seat].Count() != size {
			return fmt.Errorf("%w: seat %s has %d cards, seat W has %d", ErrUnequalHands, seat, h[seat].Count(), size)
		}
	}
	for a := cards.Seat(0); a < cards.NumSeats; a++ {
		for b := a + 1; b < cards.NumSeats; b++ {
			if !h[a].Disjoint(h[b]) {
				return fmt.Errorf("%w: seats %s and %s share a card", ErrOverlappingHands, a, b)
			}
		}
	}
	return nil
}

// ErrUnequalHands and ErrOverlappingHands are the two invalid-deal error
// kinds from spec §7.
var (
	ErrUnequalHands     = fmt.Errorf("hands are not all the same size")
	ErrOverlappingHands = fmt.Errorf("hands are not pairwise disjoint")
)

// Hand returns the card set held by seat.
func (h Hands) Hand(seat cards.Seat) cards.CardSet {
	return h[seat]
}

// All returns the union of all four hands.
func (h Hands) All() cards.CardSet {
	return h[cards.West] | h[cards.North] | h[cards.East] | h[cards.South]
}

// Remove returns Hands with c removed from seat's hand.
func (h Hands) Remove(seat cards.Seat, c cards.Card) Hands {
	h[seat] = h[seat].Remove(c)
	return h
}

// Add returns Hands with c added to seat's hand (the inverse of Remove).
func (h Hands) Add(seat cards.Seat, c cards.Card) Hands {
	h[seat] = h[seat].Add(c)
	return h
}

// Void reports whether seat holds no card of suit s.
func (h Hands) Void(seat cards.Seat, s cards.Suit) bool {
	return h[seat].IntersectSuit(s).Empty()
}

// TrumpHolding returns seat's holding in the trump suit; empty if trump is
// NoTrump.
func (h Hands) TrumpHolding(seat cards.Seat, trump cards.TrumpSuit) cards.CardSet {
	if trump.IsNoTrump() {
		return 0
	}
	return h[seat].IntersectSuit(trump.Suit())
}

// Size returns the number of cards currently held per hand (hands are kept
// equal-sized by construction and by GameState.Play/Unplay).
func (h Hands) Size() int {
	return h[cards.West].Count()
}
