package searcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tarot/experiments/metrics"
	"tarot/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrNoStatistics reports a query for a best action on a root none of
// whose legal children has been visited.
var ErrNoStatistics = errors.New("no visited legal action at the root")

const DefaultIterations = 1000

type Option func(mcts *MCTS)

// MCTS is a single-observer information set Monte Carlo tree search. The
// determinization, rollout, credit assignment and selection steps are
// pluggable. An MCTS is not safe for concurrent use.
type MCTS struct {
	iterations int
	duration   time.Duration
	c          float64
	pwConstant float64
	pwAlpha    float64
	rng        *rand.Rand

	determinizer Determinizer
	rollout      RolloutPolicy
	backprop     Backpropagator
	policy       SelectionPolicy
	sink         metrics.Sink

	tree         *Tree
	player       game.Player
	reused       bool
	metric       metrics.SearchMetric
	totals       metrics.SearchMetric
	customPolicy bool
}

// WithIterations sets the iteration budget; zero leaves only the duration.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithDuration adds a wall-clock budget checked between iterations.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.c = c
	}
}

func WithProgressiveWidening(constant, alpha float64) Option {
	return func(m *MCTS) {
		m.pwConstant = constant
		m.pwAlpha = alpha
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithDeterminizer(d Determinizer) Option {
	return func(m *MCTS) {
		if d != nil {
			m.determinizer = d
		}
	}
}

func WithRollout(r RolloutPolicy) Option {
	return func(m *MCTS) {
		if r != nil {
			m.rollout = r
		}
	}
}

func WithBackpropagation(b Backpropagator) Option {
	return func(m *MCTS) {
		if b != nil {
			m.backprop = b
		}
	}
}

func WithPolicy(p SelectionPolicy) Option {
	return func(m *MCTS) {
		if p != nil {
			m.policy = p
			m.customPolicy = true
		}
	}
}

func WithMetrics(sink metrics.Sink) Option {
	return func(m *MCTS) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// NewMCTS builds a search with re-determinization, uniform rollouts and
// UCB1 selection unless options say otherwise. It panics on an invalid
// configuration.
func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:   DefaultIterations,
		c:            DefaultExploration,
		pwConstant:   DefaultWideningConstant,
		pwAlpha:      DefaultWideningAlpha,
		determinizer: Redeterminize{},
		rollout:      UniformRollout{},
		backprop:     StandardBackprop{},
		sink:         metrics.Discard,
		tree:         NewTree(),
		player:       game.NoPlayer,
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.policy == nil {
		m.policy = UCT{C: m.c}
	}
	if m.iterations < 0 {
		panic("iterations cannot be negative")
	}
	if m.c < 0 {
		panic("exploration constant cannot be negative")
	}
	if m.pwConstant <= 0 || m.pwAlpha <= 0 {
		panic("progressive widening parameters must be positive")
	}
	return m
}

// NewRisMCTS is the re-determinizing search with plain UCB1 statistics.
func NewRisMCTS(options ...Option) *MCTS {
	return NewMCTS(options...)
}

// NewRaveMCTS shares action statistics across sibling subtrees.
func NewRaveMCTS(options ...Option) *MCTS {
	m := NewMCTS(append([]Option{WithBackpropagation(RaveBackprop{})}, options...)...)
	if !m.customPolicy {
		m.policy = RaveUCB{C: m.c, K: DefaultRaveEquivalence}
	}
	return m
}

func (m *MCTS) Tree() *Tree {
	return m.tree
}

// Reset discards the tree so the next Run starts from scratch.
func (m *MCTS) Reset() {
	m.tree = NewTree()
	m.player = game.NoPlayer
}

// Metrics returns the counters of the last Run.
func (m *MCTS) Metrics() metrics.SearchMetric {
	return m.metric
}

// Totals returns the counters accumulated over every Run.
func (m *MCTS) Totals() metrics.SearchMetric {
	return m.totals
}

func (m *MCTS) Run(state game.State) error {
	return m.RunContext(context.Background(), state)
}

// RunContext grows the tree rooted at state until the iteration or time
// budget is spent, or ctx is done. The tree from a previous Run is kept, so
// callers must Reset when the root moves to another decision.
func (m *MCTS) RunContext(ctx context.Context, state game.State) error {
	if state.IsTerminal() {
		return errors.New("searching from a terminal state")
	}
	m.reused = m.tree.Node(m.tree.Root()).Visits > 0
	m.player = state.Player()
	m.metric = metrics.SearchMetric{StartTime: time.Now(), IsTreeReused: m.reused}

	var deadline time.Time
	if m.duration > 0 {
		deadline = m.metric.StartTime.Add(m.duration)
	}

	var err error
	for i := 0; ; i++ {
		if m.iterations > 0 && i >= m.iterations {
			break
		}
		if m.iterations == 0 && deadline.IsZero() {
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		if err = m.iterate(state); err != nil {
			break
		}
		m.metric.Iterations++
	}

	m.metric.Duration = time.Since(m.metric.StartTime)
	m.metric.TreeSize = m.tree.Len()
	m.totals.Add(m.metric)
	m.totals.TreeSize = m.metric.TreeSize
	m.emit(state)

	log.Debug().Msgf("search for %s ran %d iterations in %s, tree has %d nodes", m.player, m.metric.Iterations, m.metric.Duration, m.metric.TreeSize)
	return err
}

func (m *MCTS) emit(state game.State) {
	m.sink.RecordMetric(metrics.IterationsRun, state, m.totals.Iterations)
	m.sink.RecordMetric(metrics.NodesCreated, state, m.totals.NodesCreated)
	m.sink.RecordMetric(metrics.SimulationsRun, state, m.totals.Simulations)
	m.sink.RecordMetric(metrics.NodesExpanded, state, m.totals.NodesExpanded)
	m.sink.RecordMetric(metrics.Determinizations, state, m.totals.Determinizations)
}

func (m *MCTS) iterate(root game.State) error {
	state, err := m.determinizer.Determinize(root, m.player, m.rng)
	if err != nil {
		return fmt.Errorf("determinizing: %w", err)
	}
	m.metric.Determinizations++

	// Selection
	node := m.tree.Root()
	var trace []Step
	expand := false
	for !state.IsTerminal() {
		legal := state.LegalActions()
		m.tree.observe(node, legal)
		n := m.tree.Node(node)
		if ShouldExpand(n, m.pwConstant, m.pwAlpha) && len(m.tree.Unexpanded(node, legal)) > 0 {
			expand = true
			break
		}

		a, child, created := m.selectChild(node, legal, state.Player())
		trace = append(trace, Step{Player: state.Player(), Action: a})
		if state, err = state.Play(a); err != nil {
			return fmt.Errorf("selecting %s: %w", a, err)
		}
		node = child
		if created {
			m.metric.NodesCreated++
			break
		}
	}

	// Expansion, counted once per iteration whether or not a child is added
	m.metric.NodesExpanded++
	if expand {
		unexpanded := m.tree.Unexpanded(node, state.LegalActions())
		a := unexpanded[m.rng.Intn(len(unexpanded))]
		player := state.Player()
		child, created := m.tree.Expand(node, a, player)
		if created {
			m.metric.NodesCreated++
		}
		trace = append(trace, Step{Player: player, Action: a})
		if state, err = state.Play(a); err != nil {
			return fmt.Errorf("expanding %s: %w", a, err)
		}
		node = child
	}

	// Simulation
	terminal, steps, err := m.rollout.Rollout(state, m.rng)
	if err != nil {
		return err
	}
	m.metric.Simulations++
	trace = append(trace, steps...)

	// Backpropagation
	reward := terminal.Rewards()[m.player]
	m.backprop.Backpropagate(m.tree, node, trace, reward)
	return nil
}

// selectChild prefers unvisited expanded legal children, then the best
// scored one, ties going to the earliest expanded. Without any expanded
// legal child it takes a random legal action.
func (m *MCTS) selectChild(node NodeID, legal []game.Action, player game.Player) (game.Action, NodeID, bool) {
	candidates := m.tree.ExpandedLegal(node, legal)
	if len(candidates) > 0 {
		for _, a := range candidates {
			child, _ := m.tree.Child(node, a)
			if m.tree.Node(child).Visits == 0 {
				return a, child, false
			}
		}
		best, bestScore := candidates[0], 0.0
		for i, a := range candidates {
			child, _ := m.tree.Child(node, a)
			score := m.policy.Score(m.tree, child)
			if i == 0 || score > bestScore {
				best, bestScore = a, score
			}
		}
		child, _ := m.tree.Child(node, best)
		return best, child, false
	}

	a := legal[m.rng.Intn(len(legal))]
	child, created := m.tree.Expand(node, a, player)
	return a, child, created
}

// ActionStats are the statistics of one root child.
type ActionStats struct {
	Action game.Action
	Visits int
	Value  float64
}

// RootStats lists the root's children in expansion order.
func (m *MCTS) RootStats() []ActionStats {
	root := m.tree.Node(m.tree.Root())
	stats := make([]ActionStats, 0, len(root.Expanded))
	for _, a := range root.Expanded {
		child := m.tree.Node(root.Children[a])
		stats = append(stats, ActionStats{Action: a, Visits: child.Visits, Value: child.Value})
	}
	return stats
}

// Policy is the root's visit distribution.
func (m *MCTS) Policy() map[game.Action]float64 {
	return policyOf(m.RootStats())
}

// BestAction is the most visited root child legal in state.
func (m *MCTS) BestAction(state game.State) (game.Action, error) {
	return bestOf(m.RootStats(), state.LegalActions())
}

func policyOf(stats []ActionStats) map[game.Action]float64 {
	total := 0
	for _, s := range stats {
		total += s.Visits
	}
	policy := make(map[game.Action]float64, len(stats))
	if total == 0 {
		return policy
	}
	for _, s := range stats {
		policy[s.Action] = float64(s.Visits) / float64(total)
	}
	return policy
}

func bestOf(stats []ActionStats, legal []game.Action) (game.Action, error) {
	allowed := make(map[game.Action]struct{}, len(legal))
	for _, a := range legal {
		allowed[a] = struct{}{}
	}
	var best game.Action
	bestVisits := 0
	for _, s := range stats {
		if _, ok := allowed[s.Action]; ok && s.Visits > bestVisits {
			best, bestVisits = s.Action, s.Visits
		}
	}
	if bestVisits == 0 {
		return game.Action{}, ErrNoStatistics
	}
	return best, nil
}
