package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"tarot/agent"
	"tarot/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration, flags override it")
	games := flag.Int("games", 0, "Number of hands to play")
	strategies := flag.String("strategies", "", "Comma separated strategy per seat: Min, Max, Random, RisMcts, RaveMcts")
	iterations := flag.Int("iterations", 0, "Search iterations per decision")
	duration := flag.Duration("duration", 0, "Search time per decision")
	workers := flag.Int("workers", 0, "Root-parallel searches per decision")
	concurrency := flag.Int("concurrency", 0, "Hands played at once")
	seed := flag.Uint64("seed", 0, "Seed for dealing and search")
	output := flag.String("output", "", "Directory for the result records")
	verbose := flag.Bool("verbose", false, "Log every action")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "strategies":
			cfg.Strategies, err = parseStrategies(*strategies)
		case "iterations":
			cfg.Iterations = *iterations
		case "duration":
			cfg.Duration = *duration
		case "workers":
			cfg.Workers = *workers
		case "concurrency":
			cfg.Concurrency = *concurrency
		case "seed":
			cfg.Seed = *seed
		case "output":
			cfg.Output = *output
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	fmt.Printf("games=%d passed=%d average=%v\n", summary.Games, summary.Passed, summary.AverageScores)
	if summary.Dir != "" {
		fmt.Printf("records written to %s\n", summary.Dir)
	}
}

func resolveConfig(path string) (experiments.Config, error) {
	if path == "" {
		return experiments.DefaultConfig(), nil
	}
	return experiments.LoadConfig(path)
}

func parseStrategies(list string) ([]agent.Strategy, error) {
	var out []agent.Strategy
	for _, name := range strings.Split(list, ",") {
		s, err := agent.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
