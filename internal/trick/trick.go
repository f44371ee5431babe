// Package trick implements the four-card trick state machine: accumulating
// plays, determining the winner under a trump suit, and computing the
// "winners by rank" set used by the TPN abstraction.
package trick

import (
	"fmt"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
)

// State is one of the three trick lifecycle states.
type State int

const (
	Empty State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case InProgress:
		return "InProgress"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Play is one (seat, card) play within a trick.
type Play struct {
	Seat cards.Seat
	Card cards.Card
}

// Trick accumulates 0-4 plays under one trump suit and one lead seat.
type Trick struct {
	trump    cards.TrumpSuit
	leadSeat cards.Seat
	plays    []Play
	// winIdx[i] is the index, within plays[:i+1], of the play that beats
	// all others once i+1 cards have been played. Stored per play so Unplay
	// can pop instead of recomputing (spec §4.3).
	winIdx []int
}

// New returns an Empty trick ready to receive a lead.
func New() *Trick {
	return &Trick{plays: make([]Play, 0, 4), winIdx: make([]int, 0, 4)}
}

// ErrWrongState is a programming-contract violation (spec §7): the caller
// invoked a transition from a state that does not support it.
var ErrWrongState = fmt.Errorf("trick: operation invalid in current state")

// Lifecycle returns the trick's current state.
func (t *Trick) Lifecycle() State {
	switch len(t.plays) {
	case 0:
		return Empty
	case 4:
		return Finished
	default:
		return InProgress
	}
}

// Trump returns the trump suit in effect for this trick.
func (t *Trick) Trump() cards.TrumpSuit { return t.trump }

// LeadSeat returns the seat that led this trick.
func (t *Trick) LeadSeat() cards.Seat { return t.leadSeat }

// LeadSuit returns the suit of the first card played. Valid once at least
// one card has been played.
func (t *Trick) LeadSuit() cards.Suit { return t.plays[0].Card.Suit }

// Size returns the number of cards played so far.
func (t *Trick) Size() int { return len(t.plays) }

// Plays returns the plays made so far, in order.
func (t *Trick) Plays() []Play {
	out := make([]Play, len(t.plays))
	copy(out, t.plays)
	return out
}

// AllCards returns the set of cards played so far.
func (t *Trick) AllCards() cards.CardSet {
	var s cards.CardSet
	for _, p := range t.plays {
		s = s.Add(p.Card)
	}
	return s
}

// PlayStart transitions Empty -> InProgress, recording the trump suit, the
// lead seat, and the first card. Panics (programming-contract violation)
// if the trick is not Empty.
func (t *Trick) PlayStart(trump cards.TrumpSuit, leadSeat cards.Seat, card cards.Card) {
	if t.Lifecycle() != Empty {
		panic(fmt.Errorf("%w: PlayStart on a %s trick", ErrWrongState, t.Lifecycle()))
	}
	t.trump = trump
	t.leadSeat = leadSeat
	t.plays = append(t.plays, Play{Seat: leadSeat, Card: card})
	t.winIdx = append(t.winIdx, 0)
}

// PlayContinue transitions InProgress -> InProgress (or -> Finished on the
// fourth card), recomputing the current winning index. Panics if the
// trick is Empty or already Finished.
func (t *Trick) PlayContinue(card cards.Card) {
	lifecycle := t.Lifecycle()
	if lifecycle != InProgress {
		panic(fmt.Errorf("%w: PlayContinue on a %s trick", ErrWrongState, lifecycle))
	}
	seat := (t.leadSeat + cards.Seat(len(t.plays))) % cards.NumSeats
	t.plays = append(t.plays, Play{Seat: seat, Card: card})

	prevWinner := t.plays[t.winIdx[len(t.winIdx)-1]].Card
	newIdx := t.winIdx[len(t.winIdx)-1]
	if t.beats(card, prevWinner) {
		newIdx = len(t.plays) - 1
	}
	t.winIdx = append(t.winIdx, newIdx)
}

// LastPlay returns the most recent play without removing it, and whether
// one exists.
func (t *Trick) LastPlay() (Play, bool) {
	if len(t.plays) == 0 {
		return Play{}, false
	}
	return t.plays[len(t.plays)-1], true
}

// Unplay reverses the last play, transitioning Finished -> InProgress or
// InProgress -> Empty. Panics if the trick is Empty.
func (t *Trick) Unplay() {
	if len(t.plays) == 0 {
		panic(fmt.Errorf("%w: Unplay on an Empty trick", ErrWrongState))
	}
	t.plays = t.plays[:len(t.plays)-1]
	t.winIdx = t.winIdx[:len(t.winIdx)-1]
}

// beats reports whether card beats cur under t.trump and the established
// lead suit, per the winner rule of spec §4.3: a trump beats any
// non-trump; among cards of the same suit, higher rank wins; a non-trump
// non-lead-suit card cannot win.
func (t *Trick) beats(card, cur cards.Card) bool {
	return t.cardValue(card) > t.cardValue(cur)
}

// cardValue ranks a card's trick-taking power: trump cards outrank
// lead-suit cards, which outrank everything else (which can never win).
func (t *Trick) cardValue(c cards.Card) int {
	return CardValue(t.trump, t.LeadSuit(), c)
}

// CardValue ranks a card's trick-taking power under trump and leadSuit,
// the same rule Trick uses internally: trump cards outrank lead-suit
// cards, which outrank everything else (which can never win). Exported so
// callers that reason about a hypothetical or in-progress trick (the play
// ordering heuristic) can compare cards without needing a live Trick.
func CardValue(trump cards.TrumpSuit, leadSuit cards.Suit, c cards.Card) int {
	if !trump.IsNoTrump() && c.Suit == trump.Suit() {
		return 200 + int(c.Rank)
	}
	if c.Suit == leadSuit {
		return 100 + int(c.Rank)
	}
	return 0
}

// CurrentWinningIndex returns the index, within Plays(), of the play that
// currently beats all others. Valid once at least one card has been
// played (Empty tricks panic).
func (t *Trick) CurrentWinningIndex() int {
	if len(t.plays) == 0 {
		panic(fmt.Errorf("%w: CurrentWinningIndex on an Empty trick", ErrWrongState))
	}
	return t.winIdx[len(t.winIdx)-1]
}

// CurrentWinningCard returns the card currently winning the trick. Valid
// once at least one card has been played.
func (t *Trick) CurrentWinningCard() cards.Card {
	return t.plays[t.CurrentWinningIndex()].Card
}

// CurrentWinningSeat returns the seat currently winning the trick. Valid
// once at least one card has been played.
func (t *Trick) CurrentWinningSeat() cards.Seat {
	return t.plays[t.CurrentWinningIndex()].Seat
}

// WinningCard returns the card that won a Finished trick. Panics if the
// trick is not Finished.
func (t *Trick) WinningCard() cards.Card {
	t.requireFinished("WinningCard")
	return t.CurrentWinningCard()
}

// WinningSeat returns the seat that won a Finished trick. Panics if the
// trick is not Finished.
func (t *Trick) WinningSeat() cards.Seat {
	t.requireFinished("WinningSeat")
	return t.CurrentWinningSeat()
}

func (t *Trick) requireFinished(op string) {
	if t.Lifecycle() != Finished {
		panic(fmt.Errorf("%w: %s on a %s trick", ErrWrongState, op, t.Lifecycle()))
	}
}

// WinnersByRank returns the set of cards that, across all four seats'
// original holdings, could have tied or beaten the actual winning card
// (spec §4.3). hands is the state of the four hands at the moment the
// trick is evaluated (after the trick's own cards have been removed from
// play, as GameState does on retirement).
func (t *Trick) WinnersByRank(hands deal.Hands) cards.CardSet {
	t.requireFinished("WinnersByRank")

	winner := t.WinningCard()
	winnerSeat := t.WinningSeat()
	removed := hands.All().Union(t.AllCards()).Complement(cards.Full)
	// hands[winnerSeat] no longer holds the winning card (GameState.Play
	// removed it when the winner played it); restore it so LowestEquivalent
	// walks the winner's true original holding in this suit.
	winnerHand := hands[winnerSeat].Add(winner)

	if !t.trump.IsNoTrump() && winner.Suit == t.trump.Suit() && t.LeadSuit() != t.trump.Suit() {
		// Won by ruff: the rank-winners are either the trumps that could
		// have overruffed, or (if no higher trump existed anywhere) empty.
		higherTrumps := cards.Full.IntersectSuit(t.trump.Suit()).HigherRanking(winner)
		if higherTrumps.Diff(removed).Empty() {
			return 0
		}
		low := winnerHand.LowestEquivalent(winner, removed)
		return cards.Full.HigherRankingOrEq(low).IntersectSuit(winner.Suit)
	}

	low := winnerHand.LowestEquivalent(winner, removed)
	return cards.Full.HigherRankingOrEq(low).IntersectSuit(winner.Suit)
}
