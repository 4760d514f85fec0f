package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleGraph = `3
3
#Nodes
0 A
1 B
2 C
#Edges
0 1 1
0 2 5
1 2 2
`

func newTriangle(t *testing.T) *Graph[string, float64] {
	t.Helper()
	g := NewGraph[string, float64]()
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "C", 2))
	require.NoError(t, g.AddEdge("A", "C", 5))
	return g
}

func TestGraphAsString(t *testing.T) {
	g := newTriangle(t)
	if g.AsString() != triangleGraph {
		t.Errorf("Graph wrongly printed\n%v", g.AsString())
	}
}

func TestAddNodeIsIdempotent(t *testing.T) {
	g := NewGraph[string, float64]()
	for i := 0; i < 3; i++ {
		require.NoError(t, g.AddNode("A"))
	}
	require.NoError(t, g.AddNode("B"))

	assert.Equal(t, []string{"A", "B"}, g.Nodes())
	assert.Equal(t, 2, g.NodeCount())
}

func TestIsolatedNodeExists(t *testing.T) {
	g := NewGraph[string, float64]()
	require.NoError(t, g.AddNode("lonely"))

	assert.True(t, g.ContainsNode("lonely"))
	children, err := g.Children("lonely")
	require.NoError(t, err)
	assert.NotNil(t, children)
	assert.Empty(t, children)

	edges, err := g.EdgesFrom("lonely")
	require.NoError(t, err)
	assert.NotNil(t, edges)
	assert.Empty(t, edges)
}

func TestAddEdgeAddsEndpoints(t *testing.T) {
	g := NewGraph[string, float64]()
	require.NoError(t, g.AddEdge("A", "B", 3))

	assert.True(t, g.ContainsNode("A"))
	assert.True(t, g.ContainsNode("B"))
	assert.True(t, g.ContainsEdge("A", "B", 3))
	assert.False(t, g.ContainsEdge("B", "A", 3), "edges are directed")
	assert.False(t, g.ContainsEdge("A", "B", 4))
	assert.False(t, g.ContainsEdge("A", "X", 3))

	children, err := g.Children("B")
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestParallelEdges(t *testing.T) {
	g := NewGraph[string, float64]()
	require.NoError(t, g.AddEdge("A", "B", 3))
	require.NoError(t, g.AddEdge("A", "B", 5))
	require.NoError(t, g.AddEdge("A", "B", 5))

	edges, err := g.EdgesFrom("A")
	require.NoError(t, err)
	assert.Equal(t, []Edge[string, float64]{
		{From: "A", To: "B", Weight: 3},
		{From: "A", To: "B", Weight: 5},
		{From: "A", To: "B", Weight: 5},
	}, edges)
	assert.Equal(t, 3, g.ArcCount())

	children, err := g.Children("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, children)
}

func TestSelfLoop(t *testing.T) {
	g := NewGraph[string, float64]()
	require.NoError(t, g.AddEdge("A", "A", 1))

	children, err := g.Children("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, children)
	assert.Equal(t, 1, g.NodeCount())
}

func TestInvalidWeightLeavesGraphUntouched(t *testing.T) {
	for _, weight := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		g := NewGraph[string, float64]()
		err := g.AddEdge("A", "B", weight)
		require.ErrorIs(t, err, ErrInvalidWeight, "weight %v", weight)
		assert.Equal(t, 0, g.NodeCount())
		assert.Equal(t, 0, g.ArcCount())
	}
}

func TestZeroWeightIsValid(t *testing.T) {
	g := NewGraph[string, float64]()
	require.NoError(t, g.AddEdge("A", "B", 0))
}

func TestIntegerWeights(t *testing.T) {
	g := NewGraph[int, int]()
	require.NoError(t, g.AddEdge(1, 2, 7))
	require.ErrorIs(t, g.AddEdge(1, 2, -7), ErrInvalidWeight)
}

func TestNonNumericLabels(t *testing.T) {
	g := NewGraph[string, string]()
	require.NoError(t, g.AddEdge("A", "B", "-1"))
	assert.True(t, g.ContainsEdge("A", "B", "-1"))
}

func TestUnknownNode(t *testing.T) {
	g := newTriangle(t)

	_, err := g.Children("X")
	require.ErrorIs(t, err, ErrUnknownNode)
	_, err = g.EdgesFrom("X")
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestNilInterfaceNode(t *testing.T) {
	g := NewGraph[any, float64]()
	require.ErrorIs(t, g.AddNode(nil), ErrNilNode)
	require.ErrorIs(t, g.AddEdge("A", nil, 1), ErrNilNode)
	assert.Equal(t, 0, g.NodeCount())
}

func TestIndexAccess(t *testing.T) {
	g := newTriangle(t)

	id, ok := g.NodeId("B")
	require.True(t, ok)
	assert.Equal(t, "B", g.GetNode(id))
	assert.Equal(t, []Arc[float64]{MakeArc(2, 2.0)}, g.GetArcsFrom(id))

	_, ok = g.NodeId("X")
	assert.False(t, ok)
	assert.Panics(t, func() { g.GetNode(42) })
	assert.Panics(t, func() { g.GetArcsFrom(-1) })
}

func TestNodesReturnsCopy(t *testing.T) {
	g := newTriangle(t)
	nodes := g.Nodes()
	nodes[0] = "Z"
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
}
