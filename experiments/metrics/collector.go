package metrics

import (
	"sync"
	"time"

	"tarot/game"

	"github.com/google/uuid"
)

// Counter names a search emits after every run.
const (
	IterationsRun    = "IterationsRun"
	NodesCreated     = "NodesCreated"
	SimulationsRun   = "SimulationsRun"
	NodesExpanded    = "NodesExpanded"
	Determinizations = "Determinizations"
)

// Sink receives named running totals from a search.
type Sink interface {
	RecordMetric(name string, state game.State, value int)
}

type SearchMetric struct {
	StartTime        time.Time
	Duration         time.Duration
	Iterations       int
	NodesCreated     int
	Simulations      int
	NodesExpanded    int
	Determinizations int
	TreeSize         int
	IsTreeReused     bool
}

// Add accumulates o's counters into m.
func (m *SearchMetric) Add(o SearchMetric) {
	m.Duration += o.Duration
	m.Iterations += o.Iterations
	m.NodesCreated += o.NodesCreated
	m.Simulations += o.Simulations
	m.NodesExpanded += o.NodesExpanded
	m.Determinizations += o.Determinizations
}

type MoveMetric struct {
	Step     int
	Player   int
	Phase    string
	Action   string
	Strategy string
	SearchMetric
}

type GameMetric struct {
	ID        uuid.UUID
	Taker     int // -1 when every seat passed
	Bid       string
	Scores    [game.Players]float64
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Moves     int
}

// MetricRecord is one RecordMetric call.
type MetricRecord struct {
	Game   uuid.UUID
	Name   string
	Phase  string
	Player int
	Value  int
}

// Recorder keeps every metric it is sent. It is safe for concurrent use so
// that games running in parallel can share one.
type Recorder struct {
	mu      sync.Mutex
	records []MetricRecord
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordMetric(name string, state game.State, value int) {
	r.record(uuid.Nil, name, state, value)
}

func (r *Recorder) record(id uuid.UUID, name string, state game.State, value int) {
	rec := MetricRecord{Game: id, Name: name, Player: int(game.NoPlayer), Value: value}
	if state != nil {
		rec.Player = int(state.Player())
	}
	if gs, ok := state.(*game.GameState); ok {
		rec.Phase = gs.Phase.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// For returns a Sink that tags everything it records with the game id.
func (r *Recorder) For(id uuid.UUID) Sink {
	return gameSink{recorder: r, id: id}
}

// Records returns a copy of what was recorded so far.
func (r *Recorder) Records() []MetricRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MetricRecord, len(r.records))
	copy(out, r.records)
	return out
}

type gameSink struct {
	recorder *Recorder
	id       uuid.UUID
}

func (s gameSink) RecordMetric(name string, state game.State, value int) {
	s.recorder.record(s.id, name, state, value)
}

type discard struct{}

// Discard drops every metric.
var Discard Sink = discard{}

func (discard) RecordMetric(string, game.State, int) {}
