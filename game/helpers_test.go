package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func apply(t *testing.T, s *GameState, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, s.ApplyAction(a), "applying %s in %s", a, s.Phase)
	}
}

// dealWithGarde deals a hand where seat 3 takes a Garde after three passes.
func dealWithGarde(t *testing.T, seed uint64, bid Bid) *GameState {
	t.Helper()
	s := Deal(newRand(seed))
	apply(t, s, BidPass.Action(), BidPass.Action(), BidPass.Action(), bid.Action())
	require.Equal(t, Player(3), s.Taker)
	return s
}

// playUntil plays random legal actions, validating after each one, until
// the hand ends or stop returns true.
func playUntil(t *testing.T, s *GameState, rng *rand.Rand, stop func(*GameState) bool) {
	t.Helper()
	for !s.IsTerminal() && (stop == nil || !stop(s)) {
		legal := s.LegalActions()
		require.NotEmpty(t, legal, "no legal action in %s", s.Phase)
		apply(t, s, legal[rng.Intn(len(legal))])
		require.NoError(t, s.Validate())
	}
}
