package game

import (
	"math/bits"
	"strings"
)

// CardSet is a value-typed set of cards, one bit per card code.
type CardSet struct {
	lo, hi uint64
}

// AllCards holds the full 78-card deck.
var AllCards = func() CardSet {
	var s CardSet
	for c := Card(0); c <= Card(LastCardCode); c++ {
		s = s.With(c)
	}
	return s
}()

func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s = s.With(c)
	}
	return s
}

func (s CardSet) Has(c Card) bool {
	if c < 64 {
		return s.lo&(1<<c) != 0
	}
	return s.hi&(1<<(c-64)) != 0
}

func (s CardSet) With(c Card) CardSet {
	if c < 64 {
		s.lo |= 1 << c
	} else {
		s.hi |= 1 << (c - 64)
	}
	return s
}

func (s CardSet) Without(c Card) CardSet {
	if c < 64 {
		s.lo &^= 1 << c
	} else {
		s.hi &^= 1 << (c - 64)
	}
	return s
}

func (s CardSet) Union(o CardSet) CardSet {
	return CardSet{lo: s.lo | o.lo, hi: s.hi | o.hi}
}

func (s CardSet) Intersect(o CardSet) CardSet {
	return CardSet{lo: s.lo & o.lo, hi: s.hi & o.hi}
}

func (s CardSet) Minus(o CardSet) CardSet {
	return CardSet{lo: s.lo &^ o.lo, hi: s.hi &^ o.hi}
}

func (s CardSet) Len() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

func (s CardSet) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Cards lists the members in ascending code order.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for lo := s.lo; lo != 0; lo &= lo - 1 {
		out = append(out, Card(bits.TrailingZeros64(lo)))
	}
	for hi := s.hi; hi != 0; hi &= hi - 1 {
		out = append(out, Card(64+bits.TrailingZeros64(hi)))
	}
	return out
}

func (s CardSet) Filter(keep func(Card) bool) CardSet {
	var out CardSet
	for _, c := range s.Cards() {
		if keep(c) {
			out = out.With(c)
		}
	}
	return out
}

func (s CardSet) Count(match func(Card) bool) int {
	n := 0
	for _, c := range s.Cards() {
		if match(c) {
			n++
		}
	}
	return n
}

// Trumps counts trumps including the Fool, as poignée declarations do.
func (s CardSet) Trumps() int {
	return s.Count(Card.IsTrump)
}

func (s CardSet) Points() float64 {
	total := 0.0
	for _, c := range s.Cards() {
		total += c.Points()
	}
	return total
}

func (s CardSet) String() string {
	names := make([]string, 0, s.Len())
	for _, c := range s.Cards() {
		names = append(names, c.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
