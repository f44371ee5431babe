// Package tpn implements the transposition-position table: a
// generalization-aware cache keyed by a coarse seat-shape bucket and an
// exact abstraction-level key within the bucket (spec §4.7).
package tpn

import (
	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
	"github.com/bran/ddsolve/internal/game"
)

// SeatShape packs one seat's per-suit card counts into a 16-bit value, 4
// bits per suit (counts never exceed 13).
type SeatShape uint16

func shapeOf(hand cards.CardSet) SeatShape {
	var s SeatShape
	for suit := cards.Suit(0); suit < cards.NumSuits; suit++ {
		s |= SeatShape(hand.IntersectSuit(suit).Count()) << (4 * uint(suit))
	}
	return s
}

// SeatShapes is the four-seat concatenation used as the bucket key,
// alongside the seat to move next.
type SeatShapes struct {
	Shapes [cards.NumSeats]SeatShape
	Next   cards.Seat
}

func shapesOf(g *game.State) SeatShapes {
	var ss SeatShapes
	h := g.Hands()
	for s := cards.Seat(0); s < cards.NumSeats; s++ {
		ss.Shapes[s] = shapeOf(h[s])
	}
	ss.Next = g.NextSeat()
	return ss
}

// Level is a per-suit rank cutoff: ranks at or below the cutoff are "low"
// (interchangeable within this entry's equivalence class); ranks above are
// "high" (identity matters). Cutoff -1 means every rank in the suit is
// high (no generalization); cutoff cards.Ace is the sentinel meaning no
// high cards are distinguished in that suit at all.
type Level [cards.NumSuits]int

func levelFromWinners(wbr cards.CardSet) Level {
	var lvl Level
	for s := cards.Suit(0); s < cards.NumSuits; s++ {
		inSuit := wbr.IntersectSuit(s)
		lo, ok := inSuit.Lowest()
		if !ok {
			lvl[s] = int(cards.Ace)
			continue
		}
		lvl[s] = int(lo.Rank) - 1
	}
	return lvl
}

func (lvl Level) isHigh(c cards.Card) bool {
	return int(c.Rank) > lvl[c.Suit]
}

// AbsState is the per-suit-per-seat value key: each seat's exact high-card
// holding plus a per-suit count of low cards.
type AbsState struct {
	High     [cards.NumSeats]cards.CardSet
	LowCount [cards.NumSeats][cards.NumSuits]uint8
}

func stateOf(h deal.Hands, lvl Level) AbsState {
	var st AbsState
	for seat := cards.Seat(0); seat < cards.NumSeats; seat++ {
		for _, c := range h[seat].IterHighest() {
			if lvl.isHigh(c) {
				st.High[seat] = st.High[seat].Add(c)
			} else {
				st.LowCount[seat][c.Suit]++
			}
		}
	}
	return st
}

// Entry is one cached bound within a bucket.
type Entry struct {
	Level    Level
	State    AbsState
	Lower    int // tricks-from-here lower bound
	Upper    int // tricks-from-here upper bound
	HasPV    bool
	PV       cards.Card // normalized: either a dense-ranked high card, or the sentinel (Two, suit) meaning "lowest of suit"
	MaxDepth int        // tricks remaining for which this bound is valid
}

func (e *Entry) exact() bool { return e.Lower == e.Upper }

// Table is the hash map from SeatShapes to a bucket of entries.
type Table struct {
	buckets map[SeatShapes][]*Entry

	lookupHits, lookupMisses, lookupReads int64
	insertHits, insertMisses, insertReads int64
}

// New returns an empty table.
func New() *Table {
	return &Table{buckets: make(map[SeatShapes][]*Entry)}
}

// Bound is a lookup result in absolute (not tricks-from-here) terms.
type Bound struct {
	Lower, Upper int
	PV           cards.Card
	HasPV        bool
}

// Lookup searches for entries generalizing g, tightening [alpha,beta] as
// far as the cached data allows. found is true iff at least one entry in
// the bucket applied (matched shape, state, and had sufficient depth).
func (t *Table) Lookup(g *game.State, alpha, beta, maxDepth int) (bound Bound, found bool) {
	base := g.TricksTakenByNS()
	normAlpha := alpha - base
	normBeta := beta - base

	lower, upper := 0, g.TricksLeft()
	var pv cards.Card
	havePV := false

	bucket := t.buckets[shapesOf(g)]
	hands := g.Hands()
	hit := false
	for _, e := range bucket {
		t.lookupReads++
		if e.MaxDepth < maxDepth {
			continue
		}
		if stateOf(hands, e.Level) != e.State {
			continue
		}
		found = true

		if e.exact() {
			lower, upper = e.Lower, e.Lower
			if e.HasPV {
				pv, havePV = denormalizePV(e, g), true
			}
			hit = true
			break
		}
		if e.Lower > lower {
			lower = e.Lower
			if e.HasPV {
				pv, havePV = denormalizePV(e, g), true
			}
		}
		if lower >= normBeta {
			hit = true
			break
		}
		if e.Upper < upper {
			upper = e.Upper
		}
		if upper <= normAlpha {
			hit = true
			break
		}
	}
	if hit {
		t.lookupHits++
	} else {
		t.lookupMisses++
	}

	return Bound{Lower: lower + base, Upper: upper + base, PV: pv, HasPV: havePV}, found
}

// Insert records the bound [lower,upper] (absolute NS-trick terms) and
// optional PV for g, valid for maxDepth remaining tricks; an existing entry
// with the same level and state is overwritten, not intersected. wbr is
// the winners-by-rank set accumulated while solving g's subtree, which
// defines the conservative abstraction Level for this entry.
func (t *Table) Insert(g *game.State, wbr cards.CardSet, lower, upper, maxDepth int, pv cards.Card, havePV bool) {
	base := g.TricksTakenByNS()
	lvl := levelFromWinners(wbr)
	hands := g.Hands()
	st := stateOf(hands, lvl)

	entry := &Entry{
		Level:    lvl,
		State:    st,
		Lower:    lower - base,
		Upper:    upper - base,
		MaxDepth: maxDepth,
	}
	if havePV {
		entry.HasPV = true
		entry.PV = normalizePV(hands, lvl, pv)
	}

	key := shapesOf(g)
	bucket := t.buckets[key]
	for _, e := range bucket {
		t.insertReads++
		if e.Level == entry.Level && e.State == entry.State {
			e.Lower, e.Upper, e.MaxDepth = entry.Lower, entry.Upper, entry.MaxDepth
			e.HasPV, e.PV = entry.HasPV, entry.PV
			t.insertHits++
			return
		}
	}
	t.insertMisses++
	t.buckets[key] = append(bucket, entry)
}

// normalizePV rank-normalizes a high-card PV via a CardNormalizer seeded
// by the cards no longer in anyone's hand; a low-card PV is replaced by
// the sentinel (Two, suit), meaning "play your lowest of that suit".
func normalizePV(h deal.Hands, lvl Level, pv cards.Card) cards.Card {
	if !lvl.isHigh(pv) {
		return cards.NewCard(cards.Two, pv.Suit)
	}
	n := cards.NewCardNormalizer()
	removed := cards.Full.Diff(h.All())
	for _, c := range removed.IterHighest() {
		n.Remove(c)
	}
	return n.Normalize(pv)
}

// denormalizePV inverts normalizePV against the current game's hands: a
// sentinel (Two, suit) becomes that suit's current lowest held card for
// the seat to move; a high-card PV is denormalized back to its original
// rank.
func denormalizePV(e *Entry, g *game.State) cards.Card {
	if e.PV.Rank == cards.Two && !e.Level.isHigh(e.PV) {
		low, ok := g.Hands()[g.NextSeat()].IntersectSuit(e.PV.Suit).Lowest()
		if ok {
			return low
		}
		return e.PV
	}
	n := cards.NewCardNormalizer()
	removed := cards.Full.Diff(g.Hands().All())
	for _, c := range removed.IterHighest() {
		n.Remove(c)
	}
	return n.Denormalize(e.PV)
}

// Stats summarizes bucket-size distribution (spec §9: "the design should
// expose a max-bucket-size statistic") plus the lookup/insert hit-rate
// counters the original reference implementation's TpnTable::Stats tracks.
type Stats struct {
	Buckets      int
	Entries      int
	MaxBucketLen int

	LookupHits   int64
	LookupMisses int64
	LookupReads  int64 // total bucket entries examined across all Lookup calls
	InsertHits   int64
	InsertMisses int64
	InsertReads  int64 // total bucket entries examined across all Insert calls
}

// Stats computes current table statistics.
func (t *Table) Stats() Stats {
	var s Stats
	s.Buckets = len(t.buckets)
	for _, b := range t.buckets {
		s.Entries += len(b)
		if len(b) > s.MaxBucketLen {
			s.MaxBucketLen = len(b)
		}
	}
	s.LookupHits = t.lookupHits
	s.LookupMisses = t.lookupMisses
	s.LookupReads = t.lookupReads
	s.InsertHits = t.insertHits
	s.InsertMisses = t.insertMisses
	s.InsertReads = t.insertReads
	return s
}
