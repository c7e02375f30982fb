package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// ChanceAction is one outcome of an opponent decision modelled as chance.
type ChanceAction struct {
	Action      Action
	Probability float64
}

// ChanceActions is the uniform distribution over the legal bids, discards or
// declarations of the seat to act.
func ChanceActions(s *GameState) ([]ChanceAction, error) {
	var actions []Action
	switch s.Phase {
	case Bidding:
		actions = LegalBidActions(s)
	case Chien:
		actions = cardActions(legalDiscards(s))
	case ChelemDeclaration, PoigneeDeclaration:
		actions = LegalDeclarationActions(s)
	default:
		return nil, fmt.Errorf("chance actions in %s: %w", s.Phase, ErrPhase)
	}
	out := make([]ChanceAction, len(actions))
	for i, a := range actions {
		out[i] = ChanceAction{Action: a, Probability: 1 / float64(len(actions))}
	}
	return out, nil
}

// Sample draws an action from a distribution whose probabilities sum to one.
func Sample(chances []ChanceAction, rng *rand.Rand) (Action, error) {
	if len(chances) == 0 {
		return Action{}, fmt.Errorf("sampling an empty distribution: %w", ErrRange)
	}
	r := rng.Float64()
	for _, c := range chances {
		if r < c.Probability {
			return c.Action, nil
		}
		r -= c.Probability
	}
	return chances[len(chances)-1].Action, nil
}
