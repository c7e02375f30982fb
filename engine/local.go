package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tarot/agent"
	"tarot/experiments/metrics"
	"tarot/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrTooManyMoves reports a hand that did not end within MaxMoves.
var ErrTooManyMoves = errors.New("hand did not end")

type LocalEngine struct {
	ID         uuid.UUID
	State      *game.GameState
	Agents     []agent.Agent
	Strategies []string
}

// NewLocalEngine seats one agent per player around a dealt hand. It panics
// unless there is exactly one agent per seat.
func NewLocalEngine(id uuid.UUID, state *game.GameState, agents []agent.Agent, strategies []string) *LocalEngine {
	if len(agents) != game.Players {
		panic(fmt.Sprintf("need %d agents, got %d", game.Players, len(agents)))
	}
	return &LocalEngine{
		ID:         id,
		State:      state,
		Agents:     agents,
		Strategies: strategies,
	}
}

// Run asks the agent of the seat to act for an action and applies it, until
// the hand ends.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:        e.ID,
		Taker:     int(game.NoPlayer),
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("hand %s starting", e.ID)

	step := 0
	for !e.State.IsTerminal() {
		if step >= MaxMoves {
			return gameMetric, moveMetrics, fmt.Errorf("hand %s after %d moves: %w", e.ID, step, ErrTooManyMoves)
		}
		if err := ctx.Err(); err != nil {
			return gameMetric, moveMetrics, err
		}

		player := e.State.Player()
		phase := e.State.Phase
		action, searchMetric, err := e.Agents[player].FindMove(ctx, e.State)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s finding a move in %s: %w", player, phase, err)
		}
		if err := e.State.ApplyAction(action); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s playing %s in %s: %w", player, action, phase, err)
		}
		step++

		log.Debug().Msgf("hand %s step %d: %s played %s in %s", e.ID, step, player, action, phase)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Phase:        phase.String(),
			Action:       action.String(),
			Strategy:     e.strategy(player),
			SearchMetric: searchMetric,
		})
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Moves = step
	gameMetric.Taker = int(e.State.Taker)
	if e.State.Taker.Valid() {
		gameMetric.Bid = e.State.TakerBid.String()
	}
	copy(gameMetric.Scores[:], game.Results(e.State))

	if e.State.Taker.Valid() {
		log.Info().Msgf("hand %s over: %s took a %s, scores %v", e.ID, e.State.Taker, e.State.TakerBid, gameMetric.Scores)
	} else {
		log.Info().Msgf("hand %s over: every seat passed", e.ID)
	}
	return gameMetric, moveMetrics, nil
}

func (e *LocalEngine) strategy(p game.Player) string {
	if int(p) < len(e.Strategies) {
		return e.Strategies[p]
	}
	return ""
}
