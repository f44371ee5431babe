package notation

import (
	"testing"

	"github.com/bran/ddsolve/internal/cards"
)

func c(r cards.Rank, s cards.Suit) cards.Card { return cards.NewCard(r, s) }

func TestParseCardCaseAndUnicodeSuits(t *testing.T) {
	tests := []struct {
		in   string
		want cards.Card
	}{
		{"AS", c(cards.Ace, cards.Spades)},
		{"th", c(cards.Ten, cards.Hearts)},
		{"2c", c(cards.Two, cards.Clubs)},
		{"K♦", c(cards.King, cards.Diamonds)},
		{"q♣", c(cards.Queen, cards.Clubs)},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Fatalf("ParseCard(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "A", "ABC", "1Z", "AZ"} {
		if _, err := ParseCard(in); err == nil {
			t.Fatalf("ParseCard(%q) error = nil, want non-nil", in)
		}
	}
}

func TestCardSetRoundTrip(t *testing.T) {
	want := cards.Of(c(cards.Ace, cards.Spades), c(cards.Two, cards.Spades), c(cards.Nine, cards.Hearts))
	s := FormatCardSet(want)
	got, err := ParseCardSet(s)
	if err != nil {
		t.Fatalf("ParseCardSet(%q) error = %v", s, err)
	}
	if got != want {
		t.Fatalf("ParseCardSet(FormatCardSet(want)) = %v, want %v", got, want)
	}
}

func TestParseCardSetEmptySuits(t *testing.T) {
	got, err := ParseCardSet("A2...")
	if err != nil {
		t.Fatalf("ParseCardSet() error = %v", err)
	}
	want := cards.Of(c(cards.Ace, cards.Spades), c(cards.Two, cards.Spades))
	if got != want {
		t.Fatalf("ParseCardSet(\"A2...\") = %v, want %v", got, want)
	}
}

func TestParseCardSetWrongSuitCount(t *testing.T) {
	if _, err := ParseCardSet("A2.."); err == nil {
		t.Fatal("ParseCardSet() with 3 suits error = nil, want non-nil")
	}
}

func TestHandsRoundTrip(t *testing.T) {
	s := "KQ.A../AJ.K../.QJT../4.2..A"
	h, err := ParseHands(s)
	if err != nil {
		t.Fatalf("ParseHands(%q) error = %v", s, err)
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("parsed hands failed Validate(): %v", err)
	}
	if h[cards.West].Count() != 3 {
		t.Fatalf("West hand size = %d, want 3", h[cards.West].Count())
	}

	got := FormatHands(h)
	reparsed, err := ParseHands(got)
	if err != nil {
		t.Fatalf("ParseHands(FormatHands(h)) error = %v", err)
	}
	if reparsed != h {
		t.Fatalf("round trip mismatch: %v != %v", reparsed, h)
	}
}

func TestParseHandsWrongCount(t *testing.T) {
	if _, err := ParseHands("A.../B..."); err == nil {
		t.Fatal("ParseHands() with 2 hands error = nil, want non-nil")
	}
}

func TestParseHandsReportsPosition(t *testing.T) {
	_, err := ParseHands("KQ.A../AJ.K../.QJT../4.2X..A")
	if err == nil {
		t.Fatal("ParseHands() with bad rank error = nil, want non-nil")
	}
	var pe *ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Pos <= 0 {
		t.Fatalf("ParseError.Pos = %d, want > 0 (error is past the first hand)", pe.Pos)
	}
}

func TestTrickNotationRoundTrip(t *testing.T) {
	tr, err := ParseTrick(cards.Trump(cards.Hearts), cards.West, "ASKSQS2S")
	if err != nil {
		t.Fatalf("ParseTrick() error = %v", err)
	}
	if tr.Size() != 4 {
		t.Fatalf("ParseTrick() produced %d plays, want 4", tr.Size())
	}
	if got := FormatTrick(tr); got != "ASKSQS2S" {
		t.Fatalf("FormatTrick() = %q, want %q", got, "ASKSQS2S")
	}
}

func TestParseTrickOddLength(t *testing.T) {
	if _, err := ParseTrick(cards.NoTrump, cards.North, "AS2"); err == nil {
		t.Fatal("ParseTrick() with odd-length input error = nil, want non-nil")
	}
}
