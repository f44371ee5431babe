package deal

import (
	"errors"
	"testing"

	"github.com/bran/ddsolve/internal/cards"
)

func TestNewValidHands(t *testing.T) {
	w := cards.Of(cards.NewCard(cards.Ace, cards.Spades))
	n := cards.Of(cards.NewCard(cards.King, cards.Spades))
	e := cards.Of(cards.NewCard(cards.Queen, cards.Spades))
	s := cards.Of(cards.NewCard(cards.Jack, cards.Spades))

	h, err := New(w, n, e, s)
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	if h.All().Count() != 4 {
		t.Fatalf("All().Count() = %d, want 4", h.All().Count())
	}
}

func TestNewRejectsUnequalHands(t *testing.T) {
	w := cards.Of(cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.King, cards.Spades))
	n := cards.Of(cards.NewCard(cards.Queen, cards.Spades))
	e := cards.Of(cards.NewCard(cards.Jack, cards.Spades))
	s := cards.Of(cards.NewCard(cards.Ten, cards.Spades))

	_, err := New(w, n, e, s)
	if !errors.Is(err, ErrUnequalHands) {
		t.Fatalf("New() error = %v, want ErrUnequalHands", err)
	}
}

func TestNewRejectsOverlappingHands(t *testing.T) {
	shared := cards.NewCard(cards.Ace, cards.Spades)
	w := cards.Of(shared)
	n := cards.Of(shared)
	e := cards.Of(cards.NewCard(cards.Queen, cards.Spades))
	s := cards.Of(cards.NewCard(cards.Jack, cards.Spades))

	_, err := New(w, n, e, s)
	if !errors.Is(err, ErrOverlappingHands) {
		t.Fatalf("New() error = %v, want ErrOverlappingHands", err)
	}
}

func TestVoidAndTrumpHolding(t *testing.T) {
	h := Hands{}
	h[cards.North] = cards.Of(cards.NewCard(cards.Ace, cards.Hearts))

	if h.Void(cards.North, cards.Hearts) {
		t.Fatal("North should not be void in hearts")
	}
	if !h.Void(cards.North, cards.Clubs) {
		t.Fatal("North should be void in clubs")
	}

	holding := h.TrumpHolding(cards.North, cards.Trump(cards.Hearts))
	if holding.Count() != 1 {
		t.Fatalf("TrumpHolding count = %d, want 1", holding.Count())
	}
	if nt := h.TrumpHolding(cards.North, cards.NoTrump); nt != 0 {
		t.Fatalf("TrumpHolding under NoTrump = %v, want empty", nt)
	}
}
