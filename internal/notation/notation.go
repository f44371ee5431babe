// Package notation parses and prints the hand and trick string formats
// used at the system's external boundary (spec §6): dot-separated
// suit-rank lists for hands, and concatenated rank-suit pairs for tricks.
package notation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
	"github.com/bran/ddsolve/internal/trick"
)

// upperFold normalizes rank/suit letters before matching, so "ah", "Ah" and
// "AH" all parse the same card.
var upperFold = cases.Upper(language.Und)

// ParseError reports a malformed card, rank, suit, or hands string, with
// the rune offset within the original input where parsing failed (spec
// §7: "surfaced to the caller with position").
type ParseError struct {
	Input string
	Pos   int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("notation: %v at position %d in %q", e.Err, e.Pos, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errBadRank      = fmt.Errorf("unrecognized rank")
	errBadSuit      = fmt.Errorf("unrecognized suit")
	errBadHandCount = fmt.Errorf("hands string must have exactly four /-separated hands")
	errBadSuitCount = fmt.Errorf("a hand's cards must have exactly four .-separated suits")
)

const rankLetters = "23456789TJQKA"

// handSuitOrder is the suit order used WITHIN one hand's dot-separated
// card-set notation: spades, hearts, diamonds, clubs (spec §6), which is
// cards.DisplayOrder.
var handSuitOrder = cards.DisplayOrder

func suitFromRune(r rune) (cards.Suit, bool) {
	switch r {
	case 'C', '♣':
		return cards.Clubs, true
	case 'D', '♦':
		return cards.Diamonds, true
	case 'H', '♥':
		return cards.Hearts, true
	case 'S', '♠':
		return cards.Spades, true
	}
	return 0, false
}

func rankFromRune(r rune) (cards.Rank, bool) {
	i := strings.IndexRune(rankLetters, r)
	if i < 0 {
		return 0, false
	}
	return cards.Rank(i), true
}

// ParseCard parses a two-character rank-then-suit token, e.g. "AS", "Th",
// "2♣". Letters are case-folded; suits may be CDHS or the unicode pips.
func ParseCard(s string) (cards.Card, error) {
	runes := []rune(upperFold.String(s))
	if len(runes) != 2 {
		return cards.Card{}, &ParseError{Input: s, Pos: 0, Err: errBadRank}
	}
	r, ok := rankFromRune(runes[0])
	if !ok {
		return cards.Card{}, &ParseError{Input: s, Pos: 0, Err: errBadRank}
	}
	suit, ok := suitFromRune(runes[1])
	if !ok {
		return cards.Card{}, &ParseError{Input: s, Pos: 1, Err: errBadSuit}
	}
	return cards.NewCard(r, suit), nil
}

// ParseCardSet parses one hand's dot-separated rank lists, in suit order
// spades, hearts, diamonds, clubs, e.g. "A2..." or "5.2..": one "/"-separated
// part of a Hands string. An empty suit is the empty string between two
// dots.
func ParseCardSet(s string) (cards.CardSet, error) {
	parts := strings.Split(s, ".")
	if len(parts) != cards.NumSuits {
		return 0, &ParseError{Input: s, Pos: 0, Err: errBadSuitCount}
	}

	var out cards.CardSet
	offset := 0
	for i, part := range parts {
		suit := handSuitOrder[i]
		folded := []rune(upperFold.String(part))
		for j, r := range folded {
			rank, ok := rankFromRune(r)
			if !ok {
				return 0, &ParseError{Input: s, Pos: offset + j, Err: errBadRank}
			}
			out = out.Add(cards.NewCard(rank, suit))
		}
		offset += len(part) + 1
	}
	return out, nil
}

// ParseHands parses a full Hands string, four /-separated hands in seat
// order W, N, E, S.
func ParseHands(s string) (deal.Hands, error) {
	parts := strings.Split(s, "/")
	if len(parts) != cards.NumSeats {
		return deal.Hands{}, &ParseError{Input: s, Pos: 0, Err: errBadHandCount}
	}

	offset := 0
	sets := [cards.NumSeats]cards.CardSet{}
	seatOrder := [cards.NumSeats]cards.Seat{cards.West, cards.North, cards.East, cards.South}
	for i, part := range parts {
		cs, err := ParseCardSet(part)
		if err != nil {
			var pe *ParseError
			if ok := asParseError(err, &pe); ok {
				pe.Input = s
				pe.Pos += offset
				return deal.Hands{}, pe
			}
			return deal.Hands{}, err
		}
		sets[seatOrder[i]] = cs
		offset += len(part) + 1
	}
	return deal.New(sets[cards.West], sets[cards.North], sets[cards.East], sets[cards.South])
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if !ok {
		return false
	}
	*target = pe
	return true
}

// FormatCard prints a card as rank-then-suit, e.g. "AS".
func FormatCard(c cards.Card) string {
	return c.Rank.String() + c.Suit.String()
}

// FormatCardSet prints one hand's card set in the dot-separated suit-order
// notation of spec §6 (spades, hearts, diamonds, clubs), ranks high to low
// within each suit.
func FormatCardSet(cs cards.CardSet) string {
	var parts [cards.NumSuits]string
	for i, suit := range handSuitOrder {
		var b strings.Builder
		for _, c := range cs.IntersectSuit(suit).IterHighest() {
			b.WriteString(c.Rank.String())
		}
		parts[i] = b.String()
	}
	return strings.Join(parts[:], ".")
}

// FormatHands prints a full Hands string in seat order W, N, E, S.
func FormatHands(h deal.Hands) string {
	order := [cards.NumSeats]cards.Seat{cards.West, cards.North, cards.East, cards.South}
	parts := make([]string, cards.NumSeats)
	for i, seat := range order {
		parts[i] = FormatCardSet(h[seat])
	}
	return strings.Join(parts, "/")
}

// FormatTrick concatenates a trick's plays as rank-suit pairs in play
// order (spec §6): "<rank><suit><rank><suit>...".
func FormatTrick(t *trick.Trick) string {
	var b strings.Builder
	for _, p := range t.Plays() {
		b.WriteString(FormatCard(p.Card))
	}
	return b.String()
}

// ParseTrick replays a trick-notation string into a Trick under the given
// trump suit, starting with leadSeat. Plays are read two runes at a time.
func ParseTrick(trump cards.TrumpSuit, leadSeat cards.Seat, s string) (*trick.Trick, error) {
	runes := []rune(s)
	if len(runes)%2 != 0 {
		return nil, &ParseError{Input: s, Pos: len(runes) - 1, Err: errBadRank}
	}

	t := trick.New()
	for i := 0; i < len(runes); i += 2 {
		tok := string(runes[i : i+2])
		c, err := ParseCard(tok)
		if err != nil {
			var pe *ParseError
			if asParseError(err, &pe) {
				pe.Input = s
				pe.Pos = i
				return nil, pe
			}
			return nil, err
		}
		if i == 0 {
			t.PlayStart(trump, leadSeat, c)
		} else {
			t.PlayContinue(c)
		}
	}
	return t, nil
}
