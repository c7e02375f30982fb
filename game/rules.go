package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// LegalActions returns the legal actions of the seat to act, in code order.
func (s *GameState) LegalActions() []Action {
	switch s.Phase {
	case Bidding:
		return LegalBidActions(s)
	case Chien:
		return cardActions(legalDiscards(s))
	case ChelemDeclaration, PoigneeDeclaration:
		return LegalDeclarationActions(s)
	case Playing:
		return cardActions(legalPlays(s))
	default:
		return nil
	}
}

func cardActions(set CardSet) []Action {
	cards := set.Cards()
	actions := make([]Action, len(cards))
	for i, c := range cards {
		actions[i] = c.Action()
	}
	return actions
}

// MaxBid is the highest bid recorded so far, BidPass when nobody has bid.
func (s *GameState) MaxBid() Bid {
	best := BidPass
	for _, b := range s.Bids[:s.BidCounter] {
		if b > best {
			best = b
		}
	}
	return best
}

// LegalBidActions allows a pass and every bid strictly above the current maximum.
func LegalBidActions(s *GameState) []Action {
	if s.Phase != Bidding {
		return nil
	}
	actions := []Action{BidPass.Action()}
	for b := s.MaxBid() + 1; b <= BidGardeContre; b++ {
		if b > BidPass {
			actions = append(actions, b.Action())
		}
	}
	return actions
}

// LegalDiscardActions lists the cards the taker may put aside next.
func LegalDiscardActions(s *GameState) ([]Action, error) {
	if s.Phase != Chien {
		return nil, fmt.Errorf("discard actions in %s: %w", s.Phase, ErrPhase)
	}
	return cardActions(legalDiscards(s)), nil
}

// LegalPlayActions lists the cards the current seat may play into the trick.
func LegalPlayActions(s *GameState) ([]Action, error) {
	if s.Phase != Playing {
		return nil, fmt.Errorf("play actions in %s: %w", s.Phase, ErrPhase)
	}
	return cardActions(legalPlays(s)), nil
}

// LegalDeclarationActions offers chelem to the taker in the chelem phase,
// and the poignée tiers the current hand's trump count qualifies for.
func LegalDeclarationActions(s *GameState) []Action {
	switch s.Phase {
	case ChelemDeclaration:
		return []Action{DeclareNone.Action(), DeclareChelem.Action()}
	case PoigneeDeclaration:
		actions := []Action{DeclareNone.Action()}
		trumps := s.Hands[s.Current].Trumps()
		for _, tier := range poigneeTiers {
			if trumps >= tier.minTrumps {
				actions = append(actions, tier.declaration.Action())
			}
		}
		return actions
	default:
		return nil
	}
}

func discardable(c Card) bool {
	return !c.IsKing() && !c.IsBout()
}

func legalDiscards(s *GameState) CardSet {
	if s.Phase != Chien || s.DiscardCounter >= ChienSize {
		return CardSet{}
	}
	pool := s.Hands[s.Taker].Union(s.ChienSet()).Minus(s.DiscardSet()).Filter(discardable)
	plain := pool.Filter(func(c Card) bool { return !c.IsTrump() })
	if plain.Len() >= ChienSize-s.DiscardCounter {
		return plain
	}
	return pool
}

// followFilter returns the predicate selecting the cards that must be played
// onto trick when the hand holds any of them, or nil when anything goes.
// The filter keeps lead-suit cards that beat the best lead card while no trump
// has captured the trick, and trumps that beat the best trump.
func followFilter(trick []Card) func(Card) bool {
	lead, ok := leadSuit(trick)
	if !ok {
		return nil
	}
	bestLead, bestTrump := -1, -1
	for _, c := range trick {
		switch {
		case c == Fool:
		case c.IsTrump():
			bestTrump = max(bestTrump, c.Rank())
		case c.Suit() == lead:
			bestLead = max(bestLead, c.Rank())
		}
	}
	trumped := bestTrump >= 0 && lead != Trumps
	return func(c Card) bool {
		switch {
		case c == Fool:
			return false
		case c.IsTrump():
			return c.Rank() > bestTrump
		default:
			return !trumped && c.Suit() == lead && c.Rank() > bestLead
		}
	}
}

func legalCards(hand CardSet, trick []Card) CardSet {
	keep := followFilter(trick)
	if keep == nil {
		return hand
	}
	forced := hand.Filter(keep)
	if forced.IsEmpty() {
		return hand
	}
	if hand.Has(Fool) {
		forced = forced.With(Fool)
	}
	return forced
}

func legalPlays(s *GameState) CardSet {
	if s.Phase != Playing {
		return CardSet{}
	}
	return legalCards(s.Hands[s.Current], s.Trick())
}

// ApplyAction validates a against the current phase, applies it and hands
// the turn to the next seat.
func (s *GameState) ApplyAction(a Action) error {
	var (
		next Player
		err  error
	)
	switch s.Phase {
	case Bidding:
		var b Bid
		if b, err = a.Bid(); err == nil {
			next, err = ApplyBid(s, b)
		}
	case Chien:
		var c Card
		if c, err = a.Card(); err == nil {
			next, err = ApplyChien(s, c)
		}
	case ChelemDeclaration, PoigneeDeclaration:
		var d Declaration
		if d, err = a.Declaration(); err == nil {
			next, err = ApplyDeclaration(s, d)
		}
	case Playing:
		var c Card
		if c, err = a.Card(); err == nil {
			next, err = ApplyCard(s, c)
		}
	default:
		err = fmt.Errorf("applying %s in %s: %w", a, s.Phase, ErrPhase)
	}
	if err != nil {
		return err
	}
	s.Current = next
	return nil
}

// ApplyBid records the current seat's bid. Once every seat has bid, the
// strictly highest bidder becomes the taker; if all passed the hand ends.
// Garde Sans and Garde Contre skip the chien phase.
func ApplyBid(s *GameState, b Bid) (Player, error) {
	if s.Phase != Bidding {
		return s.Current, fmt.Errorf("bid in %s: %w", s.Phase, ErrPhase)
	}
	if !b.Valid() {
		return s.Current, fmt.Errorf("bid %d: %w", uint8(b), ErrRange)
	}
	if s.BidCounter >= Players {
		return s.Current, fmt.Errorf("bid %d of %d: %w", s.BidCounter+1, Players, ErrCapacity)
	}
	if b != BidPass && b <= s.MaxBid() {
		return s.Current, fmt.Errorf("%s does not beat %s: %w", b, s.MaxBid(), ErrIllegal)
	}

	s.Bids[s.BidCounter] = b
	s.BidCounter++
	if s.BidCounter < Players {
		return s.Current.Next(), nil
	}

	taker, best := NoPlayer, BidPass
	for p, bid := range s.Bids {
		if bid > best {
			taker, best = Player(p), bid
		}
	}
	if taker == NoPlayer {
		s.Phase = End
		return s.Current, nil
	}
	s.Taker = taker
	s.TakerBid = best
	if !best.RevealsChien() {
		// Nobody sees the chien: it is set aside unchanged as the discard.
		s.Discard = s.Chien
		s.DiscardCounter = ChienSize
		s.Phase = ChelemDeclaration
		return taker, nil
	}
	s.Phase = Chien
	s.DiscardCounter = 0
	return taker, nil
}

// ApplyChien puts one card aside for the taker. After the last discard the
// taker's hand becomes hand ∪ chien minus the discards.
func ApplyChien(s *GameState, c Card) (Player, error) {
	if s.Phase != Chien {
		return s.Current, fmt.Errorf("discard in %s: %w", s.Phase, ErrPhase)
	}
	if c > Card(LastCardCode) {
		return s.Current, fmt.Errorf("discard %d: %w", uint8(c), ErrRange)
	}
	if s.DiscardCounter >= ChienSize {
		return s.Current, fmt.Errorf("discard %d of %d: %w", s.DiscardCounter+1, ChienSize, ErrCapacity)
	}
	if !legalDiscards(s).Has(c) {
		return s.Current, fmt.Errorf("discarding %s: %w", c, ErrIllegal)
	}

	s.Discard[s.DiscardCounter] = c
	s.DiscardCounter++
	if s.DiscardCounter == ChienSize {
		s.Hands[s.Taker] = s.Hands[s.Taker].Union(s.ChienSet()).Minus(s.DiscardSet())
		s.Phase = ChelemDeclaration
	}
	return s.Taker, nil
}

// ApplyDeclaration records the taker's chelem choice, then each seat's
// poignée in turn. After the last seat declares, play starts.
func ApplyDeclaration(s *GameState, d Declaration) (Player, error) {
	if !s.Phase.IsDeclaration() {
		return s.Current, fmt.Errorf("declaration in %s: %w", s.Phase, ErrPhase)
	}
	if !d.Valid() {
		return s.Current, fmt.Errorf("declaration %d: %w", uint8(d), ErrRange)
	}
	if !slices.Contains(LegalDeclarationActions(s), d.Action()) {
		return s.Current, fmt.Errorf("%s declaring %s: %w", s.Current, d, ErrIllegal)
	}

	if s.Phase == ChelemDeclaration {
		s.ChelemDeclared = d == DeclareChelem
		s.Phase = PoigneeDeclaration
		s.DeclarationCounter = 0
		return 0, nil
	}

	if s.DeclarationCounter >= Players {
		return s.Current, fmt.Errorf("declaration %d of %d: %w", s.DeclarationCounter+1, Players, ErrCapacity)
	}
	s.Declarations[s.Current] = d
	s.DeclaredTrumps[s.Current] = s.Hands[s.Current].Trumps()
	s.DeclarationCounter++
	if s.DeclarationCounter < Players {
		return s.Current.Next(), nil
	}

	s.Phase = Playing
	s.Leader = 0
	if s.ChelemDeclared {
		s.Leader = s.Taker
	}
	return s.Leader, nil
}

// ApplyCard plays a card into the current trick and resolves the trick once
// every seat has played.
func ApplyCard(s *GameState, c Card) (Player, error) {
	if s.Phase != Playing {
		return s.Current, fmt.Errorf("card in %s: %w", s.Phase, ErrPhase)
	}
	if c > Card(LastCardCode) {
		return s.Current, fmt.Errorf("card %d: %w", uint8(c), ErrRange)
	}
	if s.TrickCounter >= Players {
		return s.Current, fmt.Errorf("card %d of %d in trick: %w", s.TrickCounter+1, Players, ErrCapacity)
	}
	if !legalPlays(s).Has(c) {
		return s.Current, fmt.Errorf("%s playing %s: %w", s.Current, c, ErrIllegal)
	}

	s.Hands[s.Current] = s.Hands[s.Current].Without(c)
	s.CurrentTrick[s.TrickCounter] = c
	s.TrickCounter++
	if c == Fool {
		s.FoolPlayer = s.Current
		s.FoolTrickIndex = s.TricksCounter
	}
	if s.TrickCounter < Players {
		return s.Current.Next(), nil
	}

	offset, err := TrickWinner(s.CurrentTrick[:])
	if err != nil {
		return s.Current, err
	}
	winner := s.Leader.Offset(offset)
	s.Tricks[s.TricksCounter] = Trick{Leader: s.Leader, Cards: s.CurrentTrick}
	s.Winners[s.TricksCounter] = winner
	s.TricksCounter++
	s.TrickCounter = 0
	s.CurrentTrick = [Players]Card{}
	s.Leader = winner

	if s.TricksCounter == TricksPerHand {
		s.Phase = End
		s.settleFool()
	}
	return winner, nil
}

// settleFool marks the half point owed when the Fool went into a trick the
// other side won and its side has a trick to pay from.
func (s *GameState) settleFool() {
	if s.FoolTrickIndex < 0 {
		return
	}
	if s.SameSide(s.Winners[s.FoolTrickIndex], s.FoolPlayer) {
		return
	}
	for _, w := range s.Winners[:s.TricksCounter] {
		if s.SameSide(w, s.FoolPlayer) {
			s.FoolPaid = true
			return
		}
	}
}
