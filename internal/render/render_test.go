package render

import (
	"strings"
	"testing"

	"github.com/bran/ddsolve/internal/bench"
	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/dealgen"
	"github.com/bran/ddsolve/internal/solver"
)

func sampleResult(t *testing.T) bench.DealResult {
	t.Helper()
	h, err := dealgen.NewGenerator(5).Deal(3)
	if err != nil {
		t.Fatalf("Deal() error = %v", err)
	}
	in := bench.DealInput{Trump: cards.Trump(cards.Spades), LeadSeat: cards.North, Hands: h}
	return bench.SolveOne(in, solver.DefaultConfig())
}

func TestCompactRowContainsAllFields(t *testing.T) {
	theme := Default()
	d := sampleResult(t)
	row := theme.CompactRow(d)

	if !strings.Contains(row, d.Input.LeadSeat.String()) {
		t.Fatalf("CompactRow() = %q, missing lead seat %s", row, d.Input.LeadSeat)
	}
	if !strings.Contains(theme.CompactHeader(), "tricks") {
		t.Fatal("CompactHeader() missing \"tricks\" column label")
	}
}

func TestLabeledContainsAllFields(t *testing.T) {
	theme := Default()
	d := sampleResult(t)
	out := theme.Labeled(d)

	for _, want := range []string{"trump:", "lead:", "hands:", "tricks_ns:", "elapsed:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Labeled() missing field %q in:\n%s", want, out)
		}
	}
}
