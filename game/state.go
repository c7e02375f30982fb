package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Trick is one completed trick: the seat that led it and the cards in play order.
type Trick struct {
	Leader Player
	Cards  [Players]Card
}

// Player returns the seat that played the k-th card of the trick.
func (t Trick) Player(k int) Player {
	return t.Leader.Offset(k)
}

// GameState is the full, explicit state of one hand. Every field is a value
// (fixed-size arrays and bitsets), so a plain copy never aliases its source.
type GameState struct {
	Current Player
	Taker   Player
	Phase   Phase

	Hands   [Players]CardSet
	Chien   [ChienSize]Card // the chien as dealt
	Discard [ChienSize]Card // cards the taker set aside

	Leader       Player
	CurrentTrick [Players]Card
	Tricks       [TrickSlots]Trick
	Winners      [TrickSlots]Player

	Bids           [Players]Bid
	TakerBid       Bid
	Declarations   [Players]Declaration
	DeclaredTrumps [Players]int
	ChelemDeclared bool

	BidCounter         int
	DeclarationCounter int
	DiscardCounter     int
	TrickCounter       int // cards in the current trick
	TricksCounter      int // completed tricks

	FoolPlayer     Player
	FoolTrickIndex int
	FoolPaid       bool
}

// Deal shuffles a fresh deck: the first ChienSize cards form the chien,
// the rest are dealt HandSize at a time to each seat.
func Deal(rng *rand.Rand) *GameState {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = Card(i)
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hands := make([][]Card, Players)
	for p := range hands {
		start := ChienSize + p*HandSize
		hands[p] = deck[start : start+HandSize]
	}
	s, err := NewGameState(hands, deck[:ChienSize])
	if err != nil {
		panic(fmt.Sprintf("dealing a shuffled deck: %v", err))
	}
	return s
}

// NewGameState builds the state of a freshly dealt hand. Every collection
// must match the game constants and the 78 cards must appear exactly once.
func NewGameState(hands [][]Card, chien []Card) (*GameState, error) {
	if len(hands) != Players {
		return nil, fmt.Errorf("%d hands, want %d: %w", len(hands), Players, ErrRange)
	}
	if len(chien) != ChienSize {
		return nil, fmt.Errorf("chien of %d cards, want %d: %w", len(chien), ChienSize, ErrRange)
	}

	s := &GameState{
		Current:        0,
		Taker:          NoPlayer,
		Phase:          Bidding,
		Leader:         NoPlayer,
		FoolPlayer:     NoPlayer,
		FoolTrickIndex: -1,
	}
	var seen CardSet
	add := func(c Card) error {
		if c > Card(LastCardCode) {
			return fmt.Errorf("card %d: %w", uint8(c), ErrRange)
		}
		if seen.Has(c) {
			return fmt.Errorf("%s dealt twice: %w", c, ErrRange)
		}
		seen = seen.With(c)
		return nil
	}

	for p, hand := range hands {
		if len(hand) != HandSize {
			return nil, fmt.Errorf("hand %d has %d cards, want %d: %w", p, len(hand), HandSize, ErrRange)
		}
		for _, c := range hand {
			if err := add(c); err != nil {
				return nil, err
			}
			s.Hands[p] = s.Hands[p].With(c)
		}
	}
	for i, c := range chien {
		if err := add(c); err != nil {
			return nil, err
		}
		s.Chien[i] = c
	}
	return s, nil
}

// Clone returns an independent copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	return &c
}

func (s *GameState) Hand(p Player) CardSet {
	return s.Hands[p]
}

func (s *GameState) ChienSet() CardSet {
	return NewCardSet(s.Chien[:]...)
}

func (s *GameState) DiscardSet() CardSet {
	return NewCardSet(s.Discard[:s.DiscardCounter]...)
}

// Trick returns the cards of the trick in progress.
func (s *GameState) Trick() []Card {
	return s.CurrentTrick[:s.TrickCounter]
}

// PlayedCards is every card in a completed or in-progress trick.
func (s *GameState) PlayedCards() CardSet {
	played := NewCardSet(s.Trick()...)
	for _, t := range s.Tricks[:s.TricksCounter] {
		played = played.Union(NewCardSet(t.Cards[:]...))
	}
	return played
}

// PlayedBy is every card the seat has put in a trick so far.
func (s *GameState) PlayedBy(p Player) CardSet {
	var played CardSet
	for _, t := range s.Tricks[:s.TricksCounter] {
		for k, c := range t.Cards {
			if t.Player(k) == p {
				played = played.With(c)
			}
		}
	}
	for k, c := range s.Trick() {
		if s.Leader.Offset(k) == p {
			played = played.With(c)
		}
	}
	return played
}

// SameSide reports whether a and b play on the same side of the contract.
func (s *GameState) SameSide(a, b Player) bool {
	return (a == s.Taker) == (b == s.Taker)
}

// Validate checks the card conservation invariant for the current phase
// together with the counter bounds.
func (s *GameState) Validate() error {
	switch {
	case s.BidCounter < 0 || s.BidCounter > Players:
		return fmt.Errorf("bid counter %d: %w", s.BidCounter, ErrRange)
	case s.DeclarationCounter < 0 || s.DeclarationCounter > Players:
		return fmt.Errorf("declaration counter %d: %w", s.DeclarationCounter, ErrRange)
	case s.DiscardCounter < 0 || s.DiscardCounter > ChienSize:
		return fmt.Errorf("discard counter %d: %w", s.DiscardCounter, ErrRange)
	case s.TrickCounter < 0 || s.TrickCounter >= Players:
		return fmt.Errorf("trick counter %d: %w", s.TrickCounter, ErrRange)
	case s.TricksCounter < 0 || s.TricksCounter > TricksPerHand:
		return fmt.Errorf("tricks counter %d: %w", s.TricksCounter, ErrRange)
	}

	var union CardSet
	total := 0
	add := func(name string, set CardSet) error {
		if !union.Intersect(set).IsEmpty() {
			return fmt.Errorf("%s shares cards %s: %w", name, union.Intersect(set), ErrRange)
		}
		union = union.Union(set)
		total += set.Len()
		return nil
	}

	for p := Player(0); p < Players; p++ {
		if err := add(p.String(), s.Hands[p]); err != nil {
			return err
		}
	}
	if s.Phase <= Chien || !s.Taker.Valid() {
		if err := add("chien", s.ChienSet()); err != nil {
			return err
		}
		if s.Phase == Chien {
			discard := s.DiscardSet()
			if discard.Len() != s.DiscardCounter {
				return fmt.Errorf("duplicate discards: %w", ErrRange)
			}
			if !discard.Minus(s.Hands[s.Taker].Union(s.ChienSet())).IsEmpty() {
				return fmt.Errorf("discard %s outside taker hand and chien: %w", discard, ErrRange)
			}
		}
	} else {
		if s.DiscardCounter != ChienSize {
			return fmt.Errorf("%d discards after the chien phase: %w", s.DiscardCounter, ErrRange)
		}
		if err := add("discard", s.DiscardSet()); err != nil {
			return err
		}
		if err := add("tricks", s.PlayedCards()); err != nil {
			return err
		}
		for p := Player(0); p < Players; p++ {
			if want := HandSize - s.PlayedBy(p).Len(); s.Hands[p].Len() != want {
				return fmt.Errorf("%s holds %d cards, want %d: %w", p, s.Hands[p].Len(), want, ErrRange)
			}
		}
	}
	if total != DeckSize || union != AllCards {
		return fmt.Errorf("%d cards accounted for, want %d: %w", total, DeckSize, ErrRange)
	}
	return nil
}

func (s *GameState) String() string {
	return fmt.Sprintf("phase=%s current=%s taker=%s bid=%s tricks=%d", s.Phase, s.Current, s.Taker, s.TakerBid, s.TricksCounter)
}
