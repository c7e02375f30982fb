package searcher

import (
	"testing"

	"tarot/game"

	"github.com/stretchr/testify/require"
)

func TestTreeExpand(t *testing.T) {
	tree := NewTree()
	root := tree.Root()
	require.Equal(t, NoParent, tree.Node(root).Parent)
	require.Equal(t, 1, tree.Len())

	a, b, c := toyAction(0), toyAction(1), toyAction(2)
	childB, created := tree.Expand(root, b, 0)
	require.True(t, created)
	childA, created := tree.Expand(root, a, 0)
	require.True(t, created)

	t.Run("expanding twice reuses the child", func(t *testing.T) {
		again, created := tree.Expand(root, b, 0)
		require.False(t, created)
		require.Equal(t, childB, again)
		require.Equal(t, 3, tree.Len())
	})

	t.Run("children point back to their parent", func(t *testing.T) {
		n := tree.Node(childA)
		require.Equal(t, root, n.Parent)
		require.Equal(t, a, n.Action)
		require.Equal(t, 1, n.Depth)
		got, ok := tree.Child(root, a)
		require.True(t, ok)
		require.Equal(t, childA, got)
	})

	t.Run("expanded actions keep their order", func(t *testing.T) {
		require.Equal(t, []game.Action{b, a}, tree.Node(root).Expanded)
		require.Equal(t, []game.Action{b, a}, tree.ExpandedLegal(root, []game.Action{a, b, c}))
		require.Equal(t, []game.Action{a}, tree.ExpandedLegal(root, []game.Action{a, c}))
		require.Equal(t, []game.Action{c}, tree.Unexpanded(root, []game.Action{a, b, c}))
		require.True(t, tree.IsExpanded(root, a))
		require.False(t, tree.IsExpanded(root, c))
	})

	t.Run("recording availability", func(t *testing.T) {
		tree.observe(root, []game.Action{a, c})
		tree.observe(root, []game.Action{a})
		info := tree.Node(root).Info
		require.Equal(t, 2, info.Samples)
		require.Equal(t, 2, info.Availability[a])
		require.Equal(t, 1, info.Availability[c])
		require.Zero(t, info.Availability[b])
	})
}

func TestShouldExpand(t *testing.T) {
	withExpanded := func(visits, expanded int) *Node {
		n := &Node{Visits: visits}
		for i := 0; i < expanded; i++ {
			n.Expanded = append(n.Expanded, toyAction(i))
		}
		return n
	}

	tests := []struct {
		name     string
		visits   int
		expanded int
		want     bool
	}{
		{"always at zero visits", 0, 10, true},
		{"room left at 4 visits", 4, 3, true},
		{"4 visits allow 4 actions", 4, 4, false},
		{"room left at 16 visits", 16, 7, true},
		{"16 visits allow 8 actions", 16, 8, false},
		{"1 visit allows 2 actions", 1, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ShouldExpand(withExpanded(tc.visits, tc.expanded), 2.0, 0.5))
		})
	}
}

func TestBackpropagation(t *testing.T) {
	build := func() (*Tree, NodeID, NodeID, NodeID) {
		tree := NewTree()
		a, _ := tree.Expand(tree.Root(), toyAction(0), 0)
		b, _ := tree.Expand(tree.Root(), toyAction(1), 0)
		aa, _ := tree.Expand(a, toyAction(5), 1)
		return tree, a, b, aa
	}
	trace := []Step{{0, toyAction(0)}, {1, toyAction(5)}, {0, toyAction(1)}}

	t.Run("standard: every node on the path", func(t *testing.T) {
		tree, a, b, aa := build()
		StandardBackprop{}.Backpropagate(tree, aa, trace, 0.5)
		for _, id := range []NodeID{tree.Root(), a, aa} {
			require.Equal(t, 1, tree.Node(id).Visits)
			require.Equal(t, 0.5, tree.Node(id).Value)
		}
		require.Zero(t, tree.Node(b).Visits, "siblings are untouched")
	})

	t.Run("rave: siblings played later by the same seat", func(t *testing.T) {
		tree, a, b, aa := build()
		RaveBackprop{}.Backpropagate(tree, aa, trace, 0.5)
		require.Equal(t, 1, tree.Node(b).RaveVisits, "seat 0 played action 1 later on")
		require.Equal(t, 0.5, tree.Node(b).RaveValue)
		require.Equal(t, 1, tree.Node(a).RaveVisits)
		require.Equal(t, 1, tree.Node(aa).RaveVisits)
		require.Zero(t, tree.Node(b).Visits)
	})

	t.Run("rave: another seat's action does not count", func(t *testing.T) {
		tree, _, b, aa := build()
		RaveBackprop{}.Backpropagate(tree, aa, []Step{{0, toyAction(0)}, {1, toyAction(5)}, {1, toyAction(1)}}, 1)
		require.Zero(t, tree.Node(b).RaveVisits)
	})
}
