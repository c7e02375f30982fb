package searcher

import (
	"errors"

	"tarot/game"
)

// toyState is a one-move game: seat 0 picks one of len(rewards) actions and
// receives the matching reward.
type toyState struct {
	rewards []float64
	chosen  int
}

func newToy(rewards ...float64) toyState {
	return toyState{rewards: rewards, chosen: -1}
}

func toyAction(i int) game.Action {
	return game.Card(i).Action()
}

func (s toyState) Player() game.Player {
	return 0
}

func (s toyState) LegalActions() []game.Action {
	if s.IsTerminal() {
		return nil
	}
	actions := make([]game.Action, len(s.rewards))
	for i := range actions {
		actions[i] = toyAction(i)
	}
	return actions
}

func (s toyState) Play(a game.Action) (game.State, error) {
	if s.IsTerminal() || int(a.Value) >= len(s.rewards) {
		return nil, errors.New("illegal toy action")
	}
	return toyState{rewards: s.rewards, chosen: int(a.Value)}, nil
}

func (s toyState) IsTerminal() bool {
	return s.chosen >= 0
}

func (s toyState) Rewards() []float64 {
	out := make([]float64, game.Players)
	if s.IsTerminal() {
		out[0] = s.rewards[s.chosen]
	}
	return out
}

type metricCall struct {
	name  string
	value int
}

type mockSink struct {
	calls []metricCall
}

func (m *mockSink) RecordMetric(name string, _ game.State, value int) {
	m.calls = append(m.calls, metricCall{name: name, value: value})
}

func (m *mockSink) last(name string) int {
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].name == name {
			return m.calls[i].value
		}
	}
	return -1
}
