package agent

import (
	"context"
	"fmt"
	"time"

	"tarot/experiments/metrics"
	"tarot/game"
	"tarot/searcher"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// FindMove returns the action to play and the search metrics, if any were collected
	FindMove(ctx context.Context, state *game.GameState) (game.Action, metrics.SearchMetric, error)
}

// Config holds the search parameters shared by the tree search strategies.
type Config struct {
	Iterations       int
	Duration         time.Duration
	Exploration      float64
	WideningConstant float64
	WideningAlpha    float64
	Workers          int
	Seed             uint64
	Sink             metrics.Sink
}

// New returns the agent for strategy sitting at seat. Seeds are offset by
// the seat so that seats never share a random stream.
func New(strategy Strategy, seat game.Player, cfg Config) (Agent, error) {
	seed := cfg.Seed + uint64(seat)*7919
	switch strategy {
	case Min:
		return greedyAgent{max: false}, nil
	case Max:
		return greedyAgent{max: true}, nil
	case Random:
		return &randomAgent{rng: rand.New(rand.NewSource(seed))}, nil
	case RisMcts, RaveMcts:
		return &searchAgent{strategy: strategy, cfg: cfg, seed: seed}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %d", int(strategy))
	}
}

type greedyAgent struct {
	max bool
}

// FindMove takes the legal action of lowest (Min) or highest (Max) weight,
// the first one on ties.
func (a greedyAgent) FindMove(_ context.Context, state *game.GameState) (game.Action, metrics.SearchMetric, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("no legal action in %s", state.Phase)
	}
	best := legal[0]
	for _, action := range legal[1:] {
		w, bw := game.Weight(action), game.Weight(best)
		if (a.max && w > bw) || (!a.max && w < bw) {
			best = action
		}
	}
	return best, metrics.SearchMetric{}, nil
}

type randomAgent struct {
	rng *rand.Rand
}

// FindMove samples bids, discards and declarations from the chance model
// and cards uniformly.
func (a *randomAgent) FindMove(_ context.Context, state *game.GameState) (game.Action, metrics.SearchMetric, error) {
	if state.Phase == game.Playing {
		legal := state.LegalActions()
		if len(legal) == 0 {
			return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("no legal card to play")
		}
		return legal[a.rng.Intn(len(legal))], metrics.SearchMetric{}, nil
	}
	chances, err := game.ChanceActions(state)
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, err
	}
	action, err := game.Sample(chances, a.rng)
	return action, metrics.SearchMetric{}, err
}

type searchAgent struct {
	strategy Strategy
	cfg      Config
	seed     uint64
	moves    uint64
}

func (a *searchAgent) build(worker int) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithIterations(a.cfg.Iterations),
		searcher.WithDuration(a.cfg.Duration),
		searcher.WithSeed(a.seed + a.moves*104729 + uint64(worker)),
		searcher.WithMetrics(a.cfg.Sink),
	}
	if a.cfg.Exploration > 0 {
		options = append(options, searcher.WithExploration(a.cfg.Exploration))
	}
	if a.cfg.WideningConstant > 0 && a.cfg.WideningAlpha > 0 {
		options = append(options, searcher.WithProgressiveWidening(a.cfg.WideningConstant, a.cfg.WideningAlpha))
	}
	if a.strategy == RaveMcts {
		return searcher.NewRaveMCTS(options...)
	}
	return searcher.NewRisMCTS(options...)
}

// FindMove searches a fresh tree from state. A decision with a single legal
// action is taken without searching.
func (a *searchAgent) FindMove(ctx context.Context, state *game.GameState) (game.Action, metrics.SearchMetric, error) {
	defer func() { a.moves++ }()

	legal := state.LegalActions()
	switch len(legal) {
	case 0:
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("no legal action in %s", state.Phase)
	case 1:
		return legal[0], metrics.SearchMetric{}, nil
	}

	if a.cfg.Workers > 1 {
		result, err := searcher.SearchParallel(ctx, state, a.cfg.Workers, a.build)
		if err != nil {
			return game.Action{}, result.Metric, err
		}
		action, err := result.Best(state)
		return action, result.Metric, err
	}

	m := a.build(0)
	if err := m.RunContext(ctx, state); err != nil {
		return game.Action{}, m.Metrics(), err
	}
	action, err := m.BestAction(state)
	return action, m.Metrics(), err
}
