package cards

import "math/bits"

// CardSet is a 52-bit vector of cards. The zero value is the empty set.
// Bits outside the low 52 are always zero.
type CardSet uint64

// Full is the universe of all 52 cards.
const Full CardSet = (1 << 52) - 1

// suitMask is the 13-bit mask for one suit at its native offset.
func suitMask(s Suit) CardSet {
	return CardSet(((uint64(1) << NumRanks) - 1) << (uint(s) * NumRanks))
}

// Of builds a CardSet from a list of cards.
func Of(cs ...Card) CardSet {
	var s CardSet
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

// Add returns the set with c added.
func (s CardSet) Add(c Card) CardSet {
	return s | (1 << c.index())
}

// Remove returns the set with c removed.
func (s CardSet) Remove(c Card) CardSet {
	return s &^ (1 << c.index())
}

// Contains reports whether c is a member of s.
func (s CardSet) Contains(c Card) bool {
	return s&(1<<c.index()) != 0
}

// Union returns s ∪ o.
func (s CardSet) Union(o CardSet) CardSet { return s | o }

// Intersect returns s ∩ o.
func (s CardSet) Intersect(o CardSet) CardSet { return s & o }

// Diff returns s \ o.
func (s CardSet) Diff(o CardSet) CardSet { return s &^ o }

// Complement returns the cards in universe not in s.
func (s CardSet) Complement(universe CardSet) CardSet { return universe &^ s }

// Disjoint reports whether s and o share no cards.
func (s CardSet) Disjoint(o CardSet) bool { return s&o == 0 }

// Empty reports whether the set has no cards.
func (s CardSet) Empty() bool { return s == 0 }

// Count returns the number of cards in s.
func (s CardSet) Count() int { return bits.OnesCount64(uint64(s)) }

// IntersectSuit returns the subset of s in suit sv.
func (s CardSet) IntersectSuit(sv Suit) CardSet {
	return s & suitMask(sv)
}

// Highest returns the highest-ranked card in s. Undefined (and reports
// false) if s is empty.
func (s CardSet) Highest() (Card, bool) {
	if s == 0 {
		return Card{}, false
	}
	idx := uint(63 - bits.LeadingZeros64(uint64(s)))
	return cardFromIndex(idx), true
}

// Lowest returns the lowest-ranked card in s. Undefined (and reports
// false) if s is empty.
func (s CardSet) Lowest() (Card, bool) {
	if s == 0 {
		return Card{}, false
	}
	idx := uint(bits.TrailingZeros64(uint64(s)))
	return cardFromIndex(idx), true
}

// HighestInSuit returns the highest card of suit sv held in s.
func (s CardSet) HighestInSuit(sv Suit) (Card, bool) {
	return s.IntersectSuit(sv).Highest()
}

// LowestInSuit returns the lowest card of suit sv held in s.
func (s CardSet) LowestInSuit(sv Suit) (Card, bool) {
	return s.IntersectSuit(sv).Lowest()
}

// IterHighest returns the cards of s in strict descending rank order
// (suit-major, highest suit bits first — callers generally pre-filter to a
// single suit via IntersectSuit). The sequence is finite and
// non-restartable; ties are impossible since cards are unique.
func (s CardSet) IterHighest() []Card {
	out := make([]Card, 0, s.Count())
	for cur := s; cur != 0; {
		c, _ := cur.Highest()
		out = append(out, c)
		cur = cur.Remove(c)
	}
	return out
}

// IterLowest returns the cards of s in strict ascending rank order.
func (s CardSet) IterLowest() []Card {
	out := make([]Card, 0, s.Count())
	for cur := s; cur != 0; {
		c, _ := cur.Lowest()
		out = append(out, c)
		cur = cur.Remove(c)
	}
	return out
}

// HigherRanking returns every card of c's suit (drawn from the full
// universe, not from s) strictly higher-ranked than c.
func (s CardSet) HigherRanking(c Card) CardSet {
	return higherMask(c.Suit, c.Rank, false)
}

// HigherRankingOrEq returns every card of c's suit strictly higher-ranked
// than, or equal to, c (drawn from the full universe, not from s).
func (s CardSet) HigherRankingOrEq(c Card) CardSet {
	return higherMask(c.Suit, c.Rank, true)
}

func higherMask(sv Suit, r Rank, orEq bool) CardSet {
	var m CardSet
	start := r + 1
	if orEq {
		start = r
	}
	for rr := start; rr < NumRanks; rr++ {
		m = m.Add(Card{Rank: rr, Suit: sv})
	}
	return m
}

// Normalize compresses the ranks of s downward within each suit to fill the
// gaps left by removed, preserving relative rank order. It satisfies
// s.Normalize(removed).Count() == s.Count() for removed disjoint from s.
func (s CardSet) Normalize(removed CardSet) CardSet {
	var out CardSet
	for _, sv := range DisplayOrder {
		present := s.IntersectSuit(sv)
		gone := removed.IntersectSuit(sv)
		dst := Rank(0)
		for r := Rank(0); r < NumRanks; r++ {
			c := Card{Rank: r, Suit: sv}
			if gone.Contains(c) {
				continue
			}
			if present.Contains(c) {
				out = out.Add(Card{Rank: dst, Suit: sv})
			}
			dst++
		}
	}
	return out
}

// PruneEquivalent returns a representative subset of s in which adjacent
// ranks of the same suit collapse to their highest, where two ranks of a
// suit are equivalent when no card outside s (i.e. in removed's
// complement, meaning: no card anyone else holds) separates them. Concretely:
// within a suit, walk from the top; a held card survives in the output
// only if the card immediately above it (among the live cards, i.e. all
// cards not in removed) is not also held by s — otherwise the two are
// adjacent-equivalent and only the higher one is kept.
func (s CardSet) PruneEquivalent(removed CardSet) CardSet {
	inPlay := Full.Diff(removed)
	var out CardSet
	for _, sv := range DisplayOrder {
		held := s.IntersectSuit(sv)
		live := inPlay.IntersectSuit(sv)
		for _, c := range held.IterHighest() {
			// Find the next live rank above c (excluding c itself).
			above := live.Intersect(higherMask(sv, c.Rank, false))
			if nextAbove, ok := above.Lowest(); ok && held.Contains(nextAbove) {
				// The adjacent higher live card is also held: c is
				// dominated and collapses into that higher card's class.
				continue
			}
			out = out.Add(c)
		}
	}
	return out
}

// LowestEquivalent returns, within s, the lowest card equivalent to c under
// the adjacency relation used by PruneEquivalent: the lowest card of c's
// suit held in s such that every live card strictly between it and c is
// also held in s.
func (s CardSet) LowestEquivalent(c Card, removed CardSet) Card {
	if !s.Contains(c) {
		return c
	}
	inPlay := Full.Diff(removed)
	live := inPlay.IntersectSuit(c.Suit)
	held := s.IntersectSuit(c.Suit)
	lowest := c
	for r := c.Rank - 1; r >= 0; r-- {
		cand := Card{Rank: r, Suit: c.Suit}
		if !live.Contains(cand) {
			continue
		}
		if !held.Contains(cand) {
			break
		}
		lowest = cand
	}
	return lowest
}
