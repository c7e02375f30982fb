package game

import "fmt"

// thresholds maps the number of bouts the taker ends with to the points
// needed to make the contract.
var thresholds = [...]float64{51, 46, 41, 36}

// Breakdown itemizes the taker's score for a finished hand.
type Breakdown struct {
	Points      float64
	Bouts       int
	Threshold   float64
	Made        bool
	Contract    float64
	PetitAuBout float64
	Poignee     float64
	Chelem      float64
	Total       float64
}

// Score computes the taker's result for a finished hand.
func Score(s *GameState) (Breakdown, error) {
	if s.Phase != End {
		return Breakdown{}, fmt.Errorf("scoring in %s: %w", s.Phase, ErrPhase)
	}
	if !s.Taker.Valid() {
		return Breakdown{}, ErrNoTaker
	}

	var b Breakdown
	b.Points, b.Bouts = takerPoints(s)
	b.Threshold = thresholds[b.Bouts]
	b.Made = b.Points >= b.Threshold

	sign := -1.0
	if b.Made {
		sign = 1
	}
	mult := float64(s.TakerBid.Multiplier())
	diff := b.Points - b.Threshold
	if diff < 0 {
		diff = -diff
	}
	b.Contract = sign * (ContractBase + diff) * mult
	b.PetitAuBout = petitAuBout(s) * mult
	b.Poignee = sign * poigneeBonus(s)
	b.Chelem = chelemBonus(s)
	b.Total = b.Contract + b.PetitAuBout + b.Poignee + b.Chelem
	return b, nil
}

// Results spreads a finished hand's score over the seats: the taker gets the
// total and each defender a third of its negation. A hand without a taker,
// or one still in progress, is all zeros.
func Results(s *GameState) []float64 {
	out := make([]float64, Players)
	b, err := Score(s)
	if err != nil {
		return out
	}
	for p := range out {
		if Player(p) == s.Taker {
			out[p] = b.Total
		} else {
			out[p] = -b.Total / (Players - 1)
		}
	}
	return out
}

func takerPoints(s *GameState) (float64, int) {
	points, bouts := 0.0, 0
	take := func(c Card) {
		points += c.Points()
		if c.IsBout() {
			bouts++
		}
	}

	for i, t := range s.Tricks[:s.TricksCounter] {
		if s.Winners[i] != s.Taker {
			continue
		}
		for _, c := range t.Cards {
			if c != Fool {
				take(c)
			}
		}
	}
	if s.FoolPlayer == s.Taker {
		take(Fool)
		if s.FoolPaid {
			points -= 0.5
		}
	} else if s.FoolPaid {
		points += 0.5
	}
	if s.TakerBid != BidGardeContre {
		for _, c := range s.Discard[:s.DiscardCounter] {
			take(c)
		}
	}
	return points, bouts
}

// petitAuBout is the signed, unscaled bonus for the Petit in the last trick.
func petitAuBout(s *GameState) float64 {
	if s.TricksCounter != TricksPerHand {
		return 0
	}
	last := TricksPerHand - 1
	for _, c := range s.Tricks[last].Cards {
		if c == Petit {
			if s.Winners[last] == s.Taker {
				return PetitAuBoutBonus
			}
			return -PetitAuBoutBonus
		}
	}
	return 0
}

// poigneeBonus sums the declared tiers, each counted against its declarer
// when the recorded trump count fell short of the tier.
func poigneeBonus(s *GameState) float64 {
	total := 0.0
	for p, d := range s.Declarations {
		if !d.IsPoignee() {
			continue
		}
		if s.DeclaredTrumps[p] >= d.MinTrumps() {
			total += d.PoigneeBonus()
		} else {
			total -= d.PoigneeBonus()
		}
	}
	return total
}

func chelemBonus(s *GameState) float64 {
	won := 0
	for _, w := range s.Winners[:s.TricksCounter] {
		if w == s.Taker {
			won++
		}
	}
	// The Fool's trick does not count against a chelem.
	needed := TricksPerHand - 1
	switch {
	case won >= needed && s.ChelemDeclared:
		return ChelemBonusDeclared
	case won >= needed:
		return ChelemBonus
	case s.ChelemDeclared:
		return -ChelemBonus
	case won <= 1 && s.TricksCounter == TricksPerHand:
		return -ChelemBonus
	default:
		return 0
	}
}
