package engine

import (
	"context"

	"tarot/experiments/metrics"
)

// MaxMoves bounds a hand: 4 bids, 6 discards, 5 declarations and 76 cards
// fit well below it.
const MaxMoves = 128

type Engine interface {
	// Run plays a hand to the end and returns its metrics
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
