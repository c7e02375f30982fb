package experiments

import (
	"context"
	"fmt"

	"tarot/agent"
	"tarot/engine"
	"tarot/experiments/metrics"
	"tarot/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Summary aggregates the hands of one run.
type Summary struct {
	Games         int
	Passed        int // hands where every seat passed
	AverageScores [game.Players]float64
	Dir           string // where the records were written, empty if not
}

type hand struct {
	id    uuid.UUID
	state *game.GameState
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

// Run plays cfg.Games hands, up to cfg.Concurrency at a time, and writes the
// records under cfg.Output when it is set. Hands and their ids are drawn up
// front from cfg.Seed so a run is reproducible whatever the concurrency.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	hands := make([]hand, cfg.Games)
	for i := range hands {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return Summary{}, fmt.Errorf("hand id: %w", err)
		}
		hands[i] = hand{id: id, state: game.Deal(rng)}
	}

	log.Info().Msgf("starting %s: %d games with strategies %v", cfg.Name, cfg.Games, cfg.Strategies)

	recorder := metrics.NewRecorder()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range hands {
		h := &hands[i]
		g.Go(func() error {
			log.Info().Msgf("starting game %d of %d", i+1, cfg.Games)
			agents, err := newAgents(cfg, uint64(i), recorder.For(h.id))
			if err != nil {
				return err
			}
			e := engine.NewLocalEngine(h.id, h.state, agents, strategyNames(cfg))
			h.game, h.moves, err = e.Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			log.Info().Msgf("completed game %d of %d with scores %v", i+1, cfg.Games, h.game.Scores)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := summarize(hands)
	log.Info().Msgf("completed %s: %d games, %d passed, average scores %v", cfg.Name, summary.Games, summary.Passed, summary.AverageScores)

	if cfg.Output == "" {
		return summary, nil
	}
	dir, err := write(cfg, hands, recorder.Records())
	if err != nil {
		return summary, err
	}
	summary.Dir = dir
	return summary, nil
}

func newAgents(cfg Config, gameIndex uint64, sink metrics.Sink) ([]agent.Agent, error) {
	agents := make([]agent.Agent, game.Players)
	for p, s := range cfg.Strategies {
		a, err := agent.New(s, game.Player(p), agent.Config{
			Iterations:       cfg.Iterations,
			Duration:         cfg.Duration,
			Exploration:      cfg.Exploration,
			WideningConstant: cfg.WideningConstant,
			WideningAlpha:    cfg.WideningAlpha,
			Workers:          cfg.Workers,
			Seed:             cfg.Seed + gameIndex*1000003,
			Sink:             sink,
		})
		if err != nil {
			return nil, err
		}
		agents[p] = a
	}
	return agents, nil
}

func strategyNames(cfg Config) []string {
	names := make([]string, len(cfg.Strategies))
	for i, s := range cfg.Strategies {
		names[i] = s.String()
	}
	return names
}

func summarize(hands []hand) Summary {
	s := Summary{Games: len(hands)}
	if len(hands) == 0 {
		return s
	}
	for _, h := range hands {
		if h.game.Taker < 0 {
			s.Passed++
		}
		for p, score := range h.game.Scores {
			s.AverageScores[p] += score
		}
	}
	for p := range s.AverageScores {
		s.AverageScores[p] /= float64(len(hands))
	}
	return s
}

func write(cfg Config, hands []hand, records []metrics.MetricRecord) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(cfg); err != nil {
		return "", fmt.Errorf("failed to store setup: %w", err)
	}
	log.Info().Msg("stored setup")

	strategies := strategyNames(cfg)
	gameRecords := make([]metrics.GameRecord, 0, len(hands))
	var moveRecords []metrics.MoveRecord
	for _, h := range hands {
		gameRecords = append(gameRecords, metrics.GameRecord{Strategies: strategies, GameMetric: h.game})
		for _, mm := range h.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: h.id, MoveMetric: mm})
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteMetricRecords(records); err != nil {
		return "", fmt.Errorf("failed to write metric records: %w", err)
	}
	log.Info().Msg("stored metric records")
	return writer.Dir(), nil
}
