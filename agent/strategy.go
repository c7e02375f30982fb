package agent

import (
	"fmt"
	"strings"
)

// Strategy selects how a seat picks its actions.
type Strategy int

const (
	Min Strategy = iota
	Max
	Random
	RisMcts
	RaveMcts
)

var strategyNames = [...]string{"Min", "Max", "Random", "RisMcts", "RaveMcts"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy accepts a strategy name in any letter case.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q, want one of %s", name, strings.Join(strategyNames[:], ", "))
}

// IsSearch reports whether the strategy runs a tree search.
func (s Strategy) IsSearch() bool {
	return s == RisMcts || s == RaveMcts
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
