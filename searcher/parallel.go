package searcher

import (
	"context"
	"fmt"

	"tarot/experiments/metrics"
	"tarot/game"

	"golang.org/x/sync/errgroup"
)

// Result is the merged root statistics of a root-parallel search.
type Result struct {
	Stats  []ActionStats
	Metric metrics.SearchMetric
}

// Best is the merged most visited action legal in state.
func (r Result) Best(state game.State) (game.Action, error) {
	return bestOf(r.Stats, state.LegalActions())
}

func (r Result) Policy() map[game.Action]float64 {
	return policyOf(r.Stats)
}

// SearchParallel runs one independent search per worker from state and sums
// their root children's visits and values. build must return a distinct
// MCTS per worker, typically with its own seed.
func SearchParallel(ctx context.Context, state game.State, workers int, build func(worker int) *MCTS) (Result, error) {
	if workers < 1 {
		return Result{}, fmt.Errorf("%d workers", workers)
	}
	searches := make([]*MCTS, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range searches {
		searches[w] = build(w)
		m := searches[w]
		g.Go(func() error {
			return m.RunContext(ctx, state)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var result Result
	index := make(map[game.Action]int)
	for _, m := range searches {
		for _, s := range m.RootStats() {
			i, ok := index[s.Action]
			if !ok {
				i = len(result.Stats)
				index[s.Action] = i
				result.Stats = append(result.Stats, ActionStats{Action: s.Action})
			}
			result.Stats[i].Visits += s.Visits
			result.Stats[i].Value += s.Value
		}
		result.Metric.Add(m.Metrics())
		result.Metric.TreeSize += m.Metrics().TreeSize
	}
	result.Metric.StartTime = searches[0].Metrics().StartTime
	return result, nil
}
