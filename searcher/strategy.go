package searcher

import (
	"errors"
	"fmt"

	"tarot/game"

	"golang.org/x/exp/rand"
)

// Step is one action taken during an iteration, in tree or rollout.
type Step struct {
	Player game.Player
	Action game.Action
}

// Determinizer samples a concrete state from the observer's point of view.
type Determinizer interface {
	Determinize(state game.State, observer game.Player, rng *rand.Rand) (game.State, error)
}

// RolloutPolicy plays a state out to the end.
type RolloutPolicy interface {
	Rollout(state game.State, rng *rand.Rand) (game.State, []Step, error)
}

// Backpropagator credits reward to the path ending at leaf. trace holds
// every step taken from the root, rollout included.
type Backpropagator interface {
	Backpropagate(t *Tree, leaf NodeID, trace []Step, reward float64)
}

// Redeterminize samples a fresh hidden-card assignment every iteration.
// States without hidden information are used as they are.
type Redeterminize struct{}

func (Redeterminize) Determinize(state game.State, observer game.Player, rng *rand.Rand) (game.State, error) {
	obs, ok := state.(game.Observable)
	if !ok {
		return state, nil
	}
	return obs.Determinize(observer, rng)
}

// UniformRollout picks uniformly among the legal actions until the game ends.
type UniformRollout struct{}

func (UniformRollout) Rollout(state game.State, rng *rand.Rand) (game.State, []Step, error) {
	var steps []Step
	for !state.IsTerminal() {
		legal := state.LegalActions()
		if len(legal) == 0 {
			return nil, nil, errors.New("rollout stuck at a non-terminal state with no legal action")
		}
		a := legal[rng.Intn(len(legal))]
		steps = append(steps, Step{Player: state.Player(), Action: a})
		next, err := state.Play(a)
		if err != nil {
			return nil, nil, fmt.Errorf("rollout playing %s: %w", a, err)
		}
		state = next
	}
	return state, steps, nil
}

// StandardBackprop adds one visit and the reward to every node on the path.
type StandardBackprop struct{}

func (StandardBackprop) Backpropagate(t *Tree, leaf NodeID, _ []Step, reward float64) {
	for id := leaf; id != NoParent; id = t.Node(id).Parent {
		n := t.Node(id)
		n.Visits++
		n.Value += reward
	}
}

// RaveBackprop also credits, at every node on the path, each child whose
// action the same seat took later in the iteration.
type RaveBackprop struct{}

func (RaveBackprop) Backpropagate(t *Tree, leaf NodeID, trace []Step, reward float64) {
	StandardBackprop{}.Backpropagate(t, leaf, trace, reward)

	for id := leaf; id != NoParent; id = t.Node(id).Parent {
		n := t.Node(id)
		if n.Depth > len(trace) {
			continue
		}
		later := make(map[Step]struct{}, len(trace)-n.Depth)
		for _, s := range trace[n.Depth:] {
			later[s] = struct{}{}
		}
		for a, childID := range n.Children {
			child := t.Node(childID)
			if _, ok := later[Step{Player: child.Player, Action: a}]; ok {
				child.RaveVisits++
				child.RaveValue += reward
			}
		}
	}
}
