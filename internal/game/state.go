// Package game implements GameState, the mutable search node the solver
// plays and unplays in place (spec §4.4).
package game

import (
	"fmt"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
	"github.com/bran/ddsolve/internal/trick"
)

// ErrContractViolation mirrors trick.ErrWrongState at the GameState level:
// a caller invoked Play with a card outside ValidPlays, or Unplay with no
// prior play. These are programming bugs (spec §7), not recoverable
// conditions, so GameState panics rather than returning an error.
var ErrContractViolation = fmt.Errorf("game: programming-contract violation")

// State is the mutable search node: hands, trump, next seat to play, the
// stack of completed tricks plus the current partial trick, and the
// running trick counts.
type State struct {
	hands    deal.Hands
	trump    cards.TrumpSuit
	declarer cards.Seat
	nextSeat cards.Seat

	completed []*trick.Trick
	current   *trick.Trick

	tricksTaken     int
	tricksMax       int
	tricksTakenByNS int
}

// New builds a GameState for a deal: trump suit, the declaring seat (used
// only to define the opening lead, which is declarer's left-hand
// opponent), and the starting hands.
func New(trump cards.TrumpSuit, declarer cards.Seat, hands deal.Hands) *State {
	return &State{
		hands:     hands,
		trump:     trump,
		declarer:  declarer,
		nextSeat:  declarer.LHO(),
		completed: make([]*trick.Trick, 0, 13),
		current:   trick.New(),
		tricksMax: hands.Size(),
	}
}

// Hands returns the current hands (shrinking as play proceeds).
func (s *State) Hands() deal.Hands { return s.hands }

// Trump returns the trump suit for this deal.
func (s *State) Trump() cards.TrumpSuit { return s.trump }

// Declarer returns the declaring seat.
func (s *State) Declarer() cards.Seat { return s.declarer }

// NextSeat returns the seat to play next.
func (s *State) NextSeat() cards.Seat { return s.nextSeat }

// CurrentTrick returns the in-progress (or empty) trick.
func (s *State) CurrentTrick() *trick.Trick { return s.current }

// CompletedTricks returns the tricks retired so far, oldest first.
func (s *State) CompletedTricks() []*trick.Trick { return s.completed }

// TricksTaken returns the number of tricks retired so far.
func (s *State) TricksTaken() int { return s.tricksTaken }

// TricksMax returns the number of tricks in the deal (cards per hand).
func (s *State) TricksMax() int { return s.tricksMax }

// TricksLeft returns the number of tricks not yet retired.
func (s *State) TricksLeft() int { return s.tricksMax - s.tricksTaken }

// TricksTakenByNS returns how many retired tricks North-South has won.
func (s *State) TricksTakenByNS() int { return s.tricksTakenByNS }

// StartOfTrick reports whether the current trick has no plays yet.
func (s *State) StartOfTrick() bool { return s.current.Size() == 0 }

// Finished reports whether every trick in the deal has been played.
func (s *State) Finished() bool { return s.tricksTaken == s.tricksMax }

// ValidPlays returns the cards NextSeat() may legally play: if a trick is
// in progress and the seat holds cards of the lead suit, those cards;
// otherwise the seat's full hand (spec §4.4). Returns empty if the hand
// itself is empty (deal exhausted).
func (s *State) ValidPlays() cards.CardSet {
	hand := s.hands[s.nextSeat]
	if hand.Empty() {
		return 0
	}
	if s.current.Size() == 0 {
		return hand
	}
	leadSuit := s.current.LeadSuit()
	inSuit := hand.IntersectSuit(leadSuit)
	if !inSuit.Empty() {
		return inSuit
	}
	return hand
}

// Play plays card for NextSeat(). card must be a member of ValidPlays();
// violating this is a programming-contract violation and panics.
func (s *State) Play(card cards.Card) {
	if !s.ValidPlays().Contains(card) {
		panic(fmt.Errorf("%w: %s not in valid plays for %s", ErrContractViolation, card, s.nextSeat))
	}

	seat := s.nextSeat
	s.hands = s.hands.Remove(seat, card)

	if s.current.Size() == 0 {
		s.current.PlayStart(s.trump, seat, card)
	} else {
		s.current.PlayContinue(card)
	}

	if s.current.Lifecycle() == trick.Finished {
		winner := s.current.WinningSeat()
		s.tricksTaken++
		if winner.IsNorthSouth() {
			s.tricksTakenByNS++
		}
		s.completed = append(s.completed, s.current)
		s.current = trick.New()
		s.nextSeat = winner
		return
	}

	s.nextSeat = seat.LHO()
}

// Unplay exactly reverses the most recent Play. Panics if there is no
// prior play to reverse.
func (s *State) Unplay() {
	if s.current.Size() > 0 {
		s.revertCurrent()
		return
	}

	if len(s.completed) == 0 {
		panic(fmt.Errorf("%w: Unplay with no prior play", ErrContractViolation))
	}

	prev := s.completed[len(s.completed)-1]
	s.completed = s.completed[:len(s.completed)-1]
	winner := prev.WinningSeat()
	s.tricksTaken--
	if winner.IsNorthSouth() {
		s.tricksTakenByNS--
	}
	s.current = prev
	s.revertCurrent()
}

// revertCurrent undoes the last play within s.current, restoring the hand
// and next-seat-to-play.
func (s *State) revertCurrent() {
	last, ok := s.current.LastPlay()
	if !ok {
		panic(fmt.Errorf("%w: Unplay with no prior play", ErrContractViolation))
	}
	s.current.Unplay()
	s.hands = s.hands.Add(last.Seat, last.Card)
	s.nextSeat = last.Seat
}
