package graph

import (
	"fmt"
)

// Graph is a directed multigraph over arbitrary comparable node values.
//
// Nodes live in an arena and are addressed internally by their NodeId, the order in
// which they were added. Each node owns the list of its outgoing arcs. Parallel arcs
// and self-loops are allowed.
//
// A Graph is not safe for concurrent mutation. Once built it may be read from
// multiple goroutines.
type Graph[N comparable, W comparable] struct {
	nodes    []N          // The nodes of the graph, in insertion order
	arcs     [][]Arc[W]   // The arcs of the graph. The first slice specifies to which node the arc belongs
	index    map[N]NodeId // node value -> position in nodes
	arcCount int          // the number of arcs in the graph
}

func NewGraph[N comparable, W comparable]() *Graph[N, W] {
	return &Graph[N, W]{
		nodes: make([]N, 0),
		arcs:  make([][]Arc[W], 0),
		index: make(map[N]NodeId),
	}
}

// AddNode adds n to the graph. Adding a node which is already present is a no-op.
func (g *Graph[N, W]) AddNode(n N) error {
	if any(n) == nil {
		return ErrNilNode
	}
	g.addNode(n)
	return nil
}

func (g *Graph[N, W]) addNode(n N) NodeId {
	if id, ok := g.index[n]; ok {
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.arcs = append(g.arcs, make([]Arc[W], 0))
	g.index[n] = id
	return id
}

// AddEdge adds a directed edge from source to destination with the given weight.
// Missing endpoints are added to the graph. Every call adds a new edge, even when an
// equal edge is already present.
//
// The weight is validated before anything is changed, so a rejected edge leaves the
// graph untouched.
func (g *Graph[N, W]) AddEdge(from, to N, weight W) error {
	if any(from) == nil || any(to) == nil {
		return ErrNilNode
	}
	if err := validateWeight(weight); err != nil {
		return fmt.Errorf("edge %v -> %v: %w", from, to, err)
	}

	source := g.addNode(from)
	target := g.addNode(to)
	g.arcs[source] = append(g.arcs[source], MakeArc(target, weight))
	g.arcCount++
	return nil
}

// ContainsNode reports whether n is a node of the graph.
func (g *Graph[N, W]) ContainsNode(n N) bool {
	_, ok := g.index[n]
	return ok
}

// ContainsEdge reports whether at least one edge from -> to with the given weight exists.
func (g *Graph[N, W]) ContainsEdge(from, to N, weight W) bool {
	source, ok := g.index[from]
	if !ok {
		return false
	}
	target, ok := g.index[to]
	if !ok {
		return false
	}
	for _, arc := range g.arcs[source] {
		if arc.To == target && arc.Weight == weight {
			return true
		}
	}
	return false
}

// Children returns the distinct nodes reachable from n over one edge, ordered by
// their first edge. The result is empty, never nil, for a node without edges.
func (g *Graph[N, W]) Children(n N) ([]N, error) {
	id, ok := g.index[n]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, n)
	}

	seen := make(map[NodeId]struct{}, len(g.arcs[id]))
	children := make([]N, 0, len(g.arcs[id]))
	for _, arc := range g.arcs[id] {
		if _, ok := seen[arc.To]; ok {
			continue
		}
		seen[arc.To] = struct{}{}
		children = append(children, g.nodes[arc.To])
	}
	return children, nil
}

// EdgesFrom returns every outgoing edge of n in insertion order.
func (g *Graph[N, W]) EdgesFrom(n N) ([]Edge[N, W], error) {
	id, ok := g.index[n]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, n)
	}

	edges := make([]Edge[N, W], 0, len(g.arcs[id]))
	for _, arc := range g.arcs[id] {
		edges = append(edges, Edge[N, W]{From: n, To: g.nodes[arc.To], Weight: arc.Weight})
	}
	return edges, nil
}

// Nodes returns all nodes of the graph in insertion order.
func (g *Graph[N, W]) Nodes() []N {
	nodes := make([]N, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Return the id of the given node
func (g *Graph[N, W]) NodeId(n N) (NodeId, bool) {
	id, ok := g.index[n]
	return id, ok
}

// Return the node for the given id
func (g *Graph[N, W]) GetNode(id NodeId) N {
	if id < 0 || id >= g.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return g.nodes[id]
}

// Get the arcs for the given node
func (g *Graph[N, W]) GetArcsFrom(id NodeId) []Arc[W] {
	if id < 0 || id >= g.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return g.arcs[id]
}

// Return the number of total nodes
func (g *Graph[N, W]) NodeCount() int {
	return len(g.nodes)
}

// Return the number of total arcs
func (g *Graph[N, W]) ArcCount() int {
	return g.arcCount
}

// Return a human readable string of the graph
func (g *Graph[N, W]) AsString() string {
	return GraphAsString(g)
}
