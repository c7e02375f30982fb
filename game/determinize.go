package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// ErrDeterminize reports that no assignment of the hidden cards satisfied
// the observer's constraints.
var ErrDeterminize = errors.New("no consistent determinization")

const determinizeAttempts = 32

// dog is the hidden pile that takes part in a determinization besides the
// other seats' hands.
type dog int

const (
	dogNone    dog = iota
	dogChien       // the chien as dealt is hidden
	dogDiscard     // the taker's discard is hidden
	dogBoth        // chien and discard are the same hidden cards
)

// view is everything an observer knows about a state, and nothing more.
type view struct {
	state    *GameState
	observer Player
	dog      dog
	pool     CardSet
	holders  []Player // NoPlayer stands for the dog
	capacity []int
	voids    [Players]CardSet
	// revealed holds chien cards the observer saw that are neither in its
	// hand nor played: they sit with the taker or in the discard.
	revealed CardSet
}

func newView(s *GameState, observer Player) *view {
	v := &view{state: s, observer: observer}
	reveals := s.Taker.Valid() && s.TakerBid.RevealsChien()

	switch {
	case s.Phase == Bidding || !s.Taker.Valid():
		v.dog = dogChien
	case !reveals:
		v.dog = dogBoth
	case s.Phase == Chien || observer == s.Taker:
		v.dog = dogNone
	default:
		v.dog = dogDiscard
	}

	known := s.Hands[observer].Union(s.PlayedCards())
	if reveals && s.Phase == Chien {
		known = known.Union(s.ChienSet())
	}
	if reveals && s.Phase > Chien && observer == s.Taker {
		known = known.Union(s.DiscardSet())
	}
	v.pool = AllCards.Minus(known)
	if v.dog == dogDiscard {
		v.revealed = s.ChienSet().Intersect(v.pool)
	}

	for p := Player(0); p < Players; p++ {
		if p != observer {
			v.holders = append(v.holders, p)
			v.capacity = append(v.capacity, s.Hands[p].Len())
		}
	}
	if v.dog != dogNone {
		v.holders = append(v.holders, NoPlayer)
		v.capacity = append(v.capacity, ChienSize)
	}
	v.voids = inferVoids(s)
	return v
}

// inferVoids marks, per seat, the cards it cannot hold because it once
// played outside the forced set of a trick.
func inferVoids(s *GameState) [Players]CardSet {
	var voids [Players]CardSet
	scan := func(leader Player, cards []Card) {
		for k := 1; k < len(cards); k++ {
			keep := followFilter(cards[:k])
			if keep == nil || cards[k] == Fool || keep(cards[k]) {
				continue
			}
			p := leader.Offset(k)
			voids[p] = voids[p].Union(AllCards.Filter(keep))
		}
	}
	for _, t := range s.Tricks[:s.TricksCounter] {
		scan(t.Leader, t.Cards[:])
	}
	if s.Phase == Playing {
		scan(s.Leader, s.Trick())
	}
	return voids
}

func (v *view) allowed(c Card, h Player, soft bool) bool {
	if h == NoPlayer {
		return v.dog != dogDiscard || discardable(c)
	}
	if v.revealed.Has(c) && h != v.state.Taker {
		return false
	}
	return !soft || !v.voids[h].Has(c)
}

// assign deals the pool greedily. At each step the card with the fewest
// holders that still have room goes first, to one of them drawn with
// probability proportional to its free space.
func (v *view) assign(rng *rand.Rand, soft bool) ([]CardSet, bool) {
	type option struct {
		card    Card
		holders []int
	}
	cards := v.pool.Cards()
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	options := make([]option, len(cards))
	for i, c := range cards {
		options[i].card = c
		for h, p := range v.holders {
			if v.allowed(c, p, soft) {
				options[i].holders = append(options[i].holders, h)
			}
		}
	}

	free := slices.Clone(v.capacity)
	room := func(o option) (n, total int) {
		for _, h := range o.holders {
			if free[h] > 0 {
				n++
				total += free[h]
			}
		}
		return n, total
	}

	sets := make([]CardSet, len(v.holders))
	for len(options) > 0 {
		next, fewest := 0, len(v.holders)+1
		for i, o := range options {
			if n, _ := room(o); n < fewest {
				next, fewest = i, n
			}
		}
		o := options[next]
		_, total := room(o)
		if total == 0 {
			return nil, false
		}
		r := rng.Intn(total)
		for _, h := range o.holders {
			if free[h] == 0 {
				continue
			}
			if r < free[h] {
				sets[h] = sets[h].With(o.card)
				free[h]--
				break
			}
			r -= free[h]
		}
		options[next] = options[len(options)-1]
		options = options[:len(options)-1]
	}
	if soft && !v.poigneesHold(sets) {
		return nil, false
	}
	return sets, true
}

// poigneesHold checks that every declared poignée is still backed by the
// trumps assigned to its declarer and the trumps it already played.
func (v *view) poigneesHold(sets []CardSet) bool {
	for h, p := range v.holders {
		if p == NoPlayer {
			continue
		}
		d := v.state.Declarations[p]
		if !v.declared(p) || !d.IsPoignee() {
			continue
		}
		if sets[h].Trumps()+v.state.PlayedBy(p).Trumps() < d.MinTrumps() {
			return false
		}
	}
	return true
}

func (v *view) declared(p Player) bool {
	s := v.state
	if !s.Taker.Valid() {
		return false
	}
	return s.Phase > PoigneeDeclaration || (s.Phase == PoigneeDeclaration && int(p) < s.DeclarationCounter)
}

func (v *view) build(sets []CardSet, rng *rand.Rand) (*GameState, error) {
	s := v.state
	d := s.Clone()
	for h, p := range v.holders {
		if p != NoPlayer {
			d.Hands[p] = sets[h]
			if v.declared(p) {
				d.DeclaredTrumps[p] = sets[h].Trumps() + s.PlayedBy(p).Trumps()
			}
			continue
		}
		pile := sets[h].Cards()
		rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })
		if v.dog == dogChien || v.dog == dogBoth {
			copy(d.Chien[:], pile)
		}
		if v.dog == dogDiscard || v.dog == dogBoth {
			copy(d.Discard[:], pile)
			d.DiscardCounter = ChienSize
		}
	}

	if d.Phase == Chien && v.observer != d.Taker {
		n := d.DiscardCounter
		d.Discard = [ChienSize]Card{}
		d.DiscardCounter = 0
		for i := 0; i < n; i++ {
			legal := legalDiscards(d).Cards()
			if len(legal) == 0 {
				return nil, fmt.Errorf("replaying discard %d: %w", i+1, ErrDeterminize)
			}
			if _, err := ApplyChien(d, legal[rng.Intn(len(legal))]); err != nil {
				return nil, err
			}
		}
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("determinized state: %w", err)
	}
	return d, nil
}

// Determinize returns a complete state consistent with what observer knows
// of s: its own hand, the public bids, declarations and tricks, the chien if
// it was shown, and the discard if observer made it. The hidden cards are
// redistributed at random among the other hands and the hidden pile. Seats
// that failed to follow suit never receive cards they proved to lack, and
// declared poignées stay covered; when those soft constraints cannot be met
// they are dropped before giving up.
func Determinize(s *GameState, observer Player, rng *rand.Rand) (*GameState, error) {
	if !observer.Valid() {
		return nil, fmt.Errorf("observer %d: %w", int(observer), ErrRange)
	}
	v := newView(s, observer)

	want := 0
	for _, c := range v.capacity {
		want += c
	}
	if want != v.pool.Len() {
		return nil, fmt.Errorf("%d hidden cards for %d slots: %w", v.pool.Len(), want, ErrRange)
	}

	for _, soft := range []bool{true, false} {
		for attempt := 0; attempt < determinizeAttempts; attempt++ {
			if sets, ok := v.assign(rng, soft); ok {
				return v.build(sets, rng)
			}
		}
	}
	return nil, ErrDeterminize
}
