package game

import "golang.org/x/exp/rand"

// State is what the searcher needs from a game. Play never mutates the
// receiver: it returns the successor state.
type State interface {
	Player() Player
	LegalActions() []Action
	Play(Action) (State, error)
	IsTerminal() bool
	// Rewards is indexed by seat and only meaningful once IsTerminal is true.
	Rewards() []float64
}

// Observable is implemented by states with hidden information. Determinize
// returns a concrete state consistent with everything observer has seen.
type Observable interface {
	State
	Determinize(observer Player, rng *rand.Rand) (State, error)
}

func (s *GameState) Player() Player {
	return s.Current
}

func (s *GameState) IsTerminal() bool {
	return s.Phase == End
}

func (s *GameState) Play(a Action) (State, error) {
	next := s.Clone()
	if err := next.ApplyAction(a); err != nil {
		return nil, err
	}
	return next, nil
}

// Rewards are the seats' results in hundreds of points, which keeps them
// on the scale of the exploration constant.
func (s *GameState) Rewards() []float64 {
	out := Results(s)
	for i := range out {
		out[i] /= RewardScale
	}
	return out
}

func (s *GameState) Determinize(observer Player, rng *rand.Rand) (State, error) {
	d, err := Determinize(s, observer, rng)
	if err != nil {
		return nil, err
	}
	return d, nil
}
