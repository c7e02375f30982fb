package searcher

import "math"

// SelectionPolicy scores an expanded, visited child for selection.
type SelectionPolicy interface {
	Score(t *Tree, child NodeID) float64
}

// UCT selects by UCB1.
type UCT struct {
	C float64
}

func (p UCT) Score(t *Tree, child NodeID) float64 {
	return UCB1(t, child, p.C)
}

// RaveUCB blends each child's mean value with its all-moves-as-first value,
// trusting the latter less as real visits accumulate.
type RaveUCB struct {
	C float64
	K float64 // equivalence parameter
}

func (p RaveUCB) Score(t *Tree, child NodeID) float64 {
	n := t.Node(child)
	if n.Parent == NoParent {
		panic("cannot compute RAVE score of the root")
	}
	u := newUCT(p.C, float64(t.Node(n.Parent).Visits))
	visits := float64(n.Visits)
	if visits == 0 {
		panic("n cannot be 0")
	}

	mean := n.Value / visits
	if n.RaveVisits == 0 {
		return mean + u.explore(visits)
	}
	beta := raveBeta(visits, p.K)
	amaf := n.RaveValue / float64(n.RaveVisits)
	return (1-beta)*mean + beta*amaf + u.explore(visits)
}

func raveBeta(visits, k float64) float64 {
	return math.Sqrt(k / (3*visits + k))
}
