package searcher

import "math"

// Hyperparameters for MCTS

const DefaultExploration = 1.41 // UCB1 exploration constant

const (
	DefaultWideningConstant = 2.0 // Progressive widening constant
	DefaultWideningAlpha    = 0.5 // Progressive widening exponent
)

// DefaultRaveEquivalence is the visit count at which RAVE and Monte Carlo
// estimates weigh the same.
const DefaultRaveEquivalence = 300.0

type uct struct {
	c    float64
	logN float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, logN: math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + c*sqrt(ln(N)/n)
	return q/n + u.explore(n)
}

func (u uct) explore(n float64) float64 {
	return u.c * math.Sqrt(u.logN/n)
}

// UCB1 scores node id against its parent. It panics when either has not
// been visited, or when id is the root.
func UCB1(t *Tree, id NodeID, c float64) float64 {
	n := t.Node(id)
	if n.Parent == NoParent {
		panic("cannot compute UCB1 of the root")
	}
	return newUCT(c, float64(t.Node(n.Parent).Visits)).evaluate(n.Value, float64(n.Visits))
}
