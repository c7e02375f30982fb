package experiments

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tarot/agent"
	"tarot/game"

	"gopkg.in/yaml.v3"
)

// Config is the resolved run configuration.
type Config struct {
	Name             string           `yaml:"name" json:"name"`
	Games            int              `yaml:"games" json:"games"`
	Strategies       []agent.Strategy `yaml:"strategies" json:"strategies"`
	Iterations       int              `yaml:"iterations" json:"iterations"`
	Duration         time.Duration    `yaml:"duration" json:"duration"`
	Exploration      float64          `yaml:"exploration" json:"exploration"`
	WideningConstant float64          `yaml:"widening_constant" json:"widening_constant"`
	WideningAlpha    float64          `yaml:"widening_alpha" json:"widening_alpha"`
	Workers          int              `yaml:"workers" json:"workers"`
	Concurrency      int              `yaml:"concurrency" json:"concurrency"`
	Seed             uint64           `yaml:"seed" json:"seed"`
	Verbose          bool             `yaml:"verbose" json:"verbose"`
	Output           string           `yaml:"output" json:"output"`
}

func DefaultConfig() Config {
	return Config{
		Name:             "tarot",
		Games:            10,
		Strategies:       []agent.Strategy{agent.RisMcts, agent.Random, agent.Random, agent.Random},
		Iterations:       1000,
		Exploration:      1.41,
		WideningConstant: 2.0,
		WideningAlpha:    0.5,
		Workers:          1,
		Concurrency:      1,
		Seed:             1,
		Output:           "results",
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch {
	case cfg.Games < 0:
		return fmt.Errorf("games must not be negative, got %d", cfg.Games)
	case len(cfg.Strategies) != game.Players:
		return fmt.Errorf("need %d strategies, got %d", game.Players, len(cfg.Strategies))
	case cfg.Iterations < 0:
		return fmt.Errorf("iterations must not be negative, got %d", cfg.Iterations)
	case cfg.Iterations == 0 && cfg.Duration <= 0 && cfg.hasSearch():
		return errors.New("search strategies need iterations or a duration")
	case cfg.Exploration < 0:
		return fmt.Errorf("exploration must not be negative, got %g", cfg.Exploration)
	case cfg.WideningConstant <= 0 || cfg.WideningAlpha <= 0:
		return errors.New("progressive widening parameters must be positive")
	case cfg.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	case cfg.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	for _, s := range cfg.Strategies {
		if s < agent.Min || s > agent.RaveMcts {
			return fmt.Errorf("unknown strategy %d", int(s))
		}
	}
	return nil
}

func (cfg Config) hasSearch() bool {
	for _, s := range cfg.Strategies {
		if s.IsSearch() {
			return true
		}
	}
	return false
}
