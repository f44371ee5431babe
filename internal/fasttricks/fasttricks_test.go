package fasttricks

import (
	"testing"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
	"github.com/bran/ddsolve/internal/notation"
)

func c(r cards.Rank, s cards.Suit) cards.Card { return cards.NewCard(r, s) }

// mustHands parses a W/N/E/S hand string (spec §6 notation).
func mustHands(t *testing.T, s string) deal.Hands {
	t.Helper()
	hands, err := notation.ParseHands(s)
	if err != nil {
		t.Fatalf("ParseHands(%q) error = %v", s, err)
	}
	return hands
}

func mustCardSet(t *testing.T, s string) cards.CardSet {
	t.Helper()
	cs, err := notation.ParseCardSet(s)
	if err != nil {
		t.Fatalf("ParseCardSet(%q) error = %v", s, err)
	}
	return cs
}

func TestEstimateRunsASolidSuit(t *testing.T) {
	// West holds AKQ of spades uncontested at the top; North holds a single
	// low spade so the run is a genuine rank-beating win rather than a
	// vacuous one against an all-void table. East (West's partner) and
	// South are void in spades but hold other-suit cards to discard on.
	h := mustHands(t, "AKQ.../2.23../..234./...234")
	tricks, wbr := Estimate(h, cards.West, cards.NoTrump)
	if tricks != 3 {
		t.Fatalf("Estimate tricks = %d, want 3", tricks)
	}
	if !wbr.Contains(c(cards.Ace, cards.Spades)) {
		t.Fatal("winners-by-rank missing the Ace of spades")
	}
}

// Ground-truth scenarios ported from the original fast-tricks reference
// implementation's own test suite (W/N/E/S hands, my_seat always West).
func TestEstimateGroundTruthScenarios(t *testing.T) {
	tests := []struct {
		name   string
		hands  string
		trump  cards.TrumpSuit
		tricks int
		wbr    string
	}{
		{"empty", ".../.../.../...", cards.NoTrump, 0, "..."},
		{"end_in_hand", "...AK/...QJ/...T9/...87", cards.NoTrump, 2, "...AK"},
		{"end_in_pa", "...32/...54/...AK/...76", cards.NoTrump, 2, "...AK"},
		{"opp_ruffs_spades_trump_a", "...AK/32.../...32/...54", cards.Trump(cards.Spades), 0, "..."},
		{"opp_ruffs_no_trump_a", "...AK/32.../...32/...54", cards.NoTrump, 2, "...AK"},
		{"opp_ruffs_spades_trump_b", "...AK/...32/...54/32...", cards.Trump(cards.Spades), 0, ".../.../.../..."},
		{"opp_ruffs_no_trump_b", "...AK/...32/...54/32...", cards.NoTrump, 2, "...AK"},
		{"length_tricks_end_in_hand", "...AK32/32...QJ/7654.../AKQJ...", cards.NoTrump, 4, "...AK"},
		{"length_tricks_end_in_pa", "765...4/32...QJ/...AK32/AKQJ...", cards.NoTrump, 4, "...AK"},
		{"transfer", "KQ2...2/.../A3...AK/...", cards.NoTrump, 4, "AK...AK"},
		{"length_tricks_discards_no_trump", "AKQ...2/.../2...AKQ/...", cards.NoTrump, 4, "AKQ...A"},
		{"length_tricks_discards_spades_trump", "...AKQ/.../32...2/...", cards.Trump(cards.Spades), 1, "...AKQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustHands(t, tt.hands)
			wantWbr := mustCardSet(t, tt.wbr)

			tricks, wbr := Estimate(h, cards.West, tt.trump)
			if tricks != tt.tricks {
				t.Errorf("tricks = %d, want %d", tricks, tt.tricks)
			}
			if wbr != wantWbr {
				t.Errorf("winners-by-rank = %v, want %v", wbr, wantWbr)
			}
		})
	}
}

func TestEstimateBlockedByOpponentTopCard(t *testing.T) {
	// North (the mover) holds the King of hearts, South (North's partner)
	// holds the Queen, but East holds the Ace: neither destination seat
	// holds the suit's overall top card, so no trick can be cashed.
	h := mustHands(t, ".2../.K../.A../.Q..")
	tricks, _ := Estimate(h, cards.North, cards.NoTrump)
	if tricks != 0 {
		t.Fatalf("Estimate tricks = %d, want 0 (East holds the ace)", tricks)
	}
}

func TestEstimateIsNeverNegative(t *testing.T) {
	h := mustHands(t, "...2/...3/...4/...5")
	tricks, _ := Estimate(h, cards.North, cards.NoTrump)
	if tricks < 0 {
		t.Fatalf("Estimate tricks = %d, want >= 0", tricks)
	}
}
