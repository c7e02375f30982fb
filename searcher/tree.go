package searcher

import (
	"math"

	"tarot/game"
)

// NodeID addresses a node in a Tree.
type NodeID int

// NoParent is the root's parent.
const NoParent NodeID = -1

// InformationSet summarizes the determinizations that reached a node: how
// many there were and how often each action was legal among them.
type InformationSet struct {
	Samples      int
	Availability map[game.Action]int
}

type Node struct {
	Parent NodeID
	Action game.Action // action taken from the parent
	Player game.Player // seat that took Action, NoPlayer at the root
	Depth  int

	Children map[game.Action]NodeID
	Expanded []game.Action // in expansion order

	Visits int
	Value  float64

	// All-moves-as-first statistics for Action, shared across the subtree
	// rooted at the parent.
	RaveVisits int
	RaveValue  float64

	Info InformationSet
}

// Tree is an arena of nodes; node 0 is the root.
type Tree struct {
	nodes []Node
}

func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, newNode(NoParent, game.Action{}, game.NoPlayer, 0))
	return t
}

func newNode(parent NodeID, action game.Action, player game.Player, depth int) Node {
	return Node{
		Parent:   parent,
		Action:   action,
		Player:   player,
		Depth:    depth,
		Children: make(map[game.Action]NodeID),
		Info:     InformationSet{Availability: make(map[game.Action]int)},
	}
}

func (t *Tree) Root() NodeID {
	return 0
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a pointer into the arena, valid until the next node is added.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Child returns the child reached by a, if any.
func (t *Tree) Child(id NodeID, a game.Action) (NodeID, bool) {
	child, ok := t.nodes[id].Children[a]
	return child, ok
}

// Expand registers a as expanded under id and returns its child, creating it
// when needed.
func (t *Tree) Expand(id NodeID, a game.Action, player game.Player) (NodeID, bool) {
	if child, ok := t.nodes[id].Children[a]; ok {
		return child, false
	}
	child := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, newNode(id, a, player, t.nodes[id].Depth+1))
	n := &t.nodes[id]
	n.Children[a] = child
	n.Expanded = append(n.Expanded, a)
	return child, true
}

func (t *Tree) IsExpanded(id NodeID, a game.Action) bool {
	_, ok := t.nodes[id].Children[a]
	return ok
}

// Unexpanded filters legal down to the actions id has no child for.
func (t *Tree) Unexpanded(id NodeID, legal []game.Action) []game.Action {
	var out []game.Action
	for _, a := range legal {
		if !t.IsExpanded(id, a) {
			out = append(out, a)
		}
	}
	return out
}

// ExpandedLegal lists, in expansion order, the expanded actions of id that
// are in legal.
func (t *Tree) ExpandedLegal(id NodeID, legal []game.Action) []game.Action {
	allowed := make(map[game.Action]struct{}, len(legal))
	for _, a := range legal {
		allowed[a] = struct{}{}
	}
	var out []game.Action
	for _, a := range t.nodes[id].Expanded {
		if _, ok := allowed[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (t *Tree) observe(id NodeID, legal []game.Action) {
	info := &t.nodes[id].Info
	info.Samples++
	for _, a := range legal {
		info.Availability[a]++
	}
}

// ShouldExpand is the progressive widening gate: a node may grow while it
// has fewer expanded actions than c·visits^alpha, and always when unvisited.
func ShouldExpand(n *Node, c, alpha float64) bool {
	if n.Visits == 0 {
		return true
	}
	return float64(len(n.Expanded)) < c*math.Pow(float64(n.Visits), alpha)
}
