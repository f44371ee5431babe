package main

import (
	"testing"

	"github.com/bran/ddsolve/internal/bench"
	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/solver"
)

func TestParseLineSimpleSqueeze(t *testing.T) {
	in, err := parseLine("NT S KQ.A../AJ.K../.QJT../4.2..A")
	if err != nil {
		t.Fatalf("parseLine() error = %v", err)
	}
	if !in.Trump.IsNoTrump() {
		t.Fatalf("Trump = %v, want NoTrump", in.Trump)
	}
	if in.LeadSeat != cards.South {
		t.Fatalf("LeadSeat = %v, want South", in.LeadSeat)
	}
	if in.Hands.Size() != 3 {
		t.Fatalf("Hands.Size() = %d, want 3", in.Hands.Size())
	}
}

func TestParseLineWrongFieldCount(t *testing.T) {
	if _, err := parseLine("NT S"); err == nil {
		t.Fatal("parseLine() with 2 fields error = nil, want non-nil")
	}
}

func TestParseTrumpRecognizesSuitsAndNoTrump(t *testing.T) {
	tests := map[string]bool{"NT": true, "S": false, "h": false, "D": false, "c": false}
	for in, wantNoTrump := range tests {
		trump, err := parseTrump(in)
		if err != nil {
			t.Fatalf("parseTrump(%q) error = %v", in, err)
		}
		if trump.IsNoTrump() != wantNoTrump {
			t.Fatalf("parseTrump(%q).IsNoTrump() = %v, want %v", in, trump.IsNoTrump(), wantNoTrump)
		}
	}
}

func TestParseTrumpRejectsGarbage(t *testing.T) {
	if _, err := parseTrump("X"); err == nil {
		t.Fatal("parseTrump(\"X\") error = nil, want non-nil")
	}
}

func TestRunBatchPlayReportsACard(t *testing.T) {
	in, err := parseLine("NT S KQ.A../AJ.K../.QJT../4.2..A")
	if err != nil {
		t.Fatalf("parseLine() error = %v", err)
	}
	if err := runBatchPlay([]bench.DealInput{in}, solver.DefaultConfig()); err != nil {
		t.Fatalf("runBatchPlay() error = %v", err)
	}
}

func TestParseSeatLettersAndNames(t *testing.T) {
	want := map[string]cards.Seat{"W": cards.West, "n": cards.North, "E": cards.East, "south": cards.South}
	for in, seat := range want {
		got, err := parseSeat(in)
		if err != nil {
			t.Fatalf("parseSeat(%q) error = %v", in, err)
		}
		if got != seat {
			t.Fatalf("parseSeat(%q) = %v, want %v", in, got, seat)
		}
	}
}
