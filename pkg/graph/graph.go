package graph

import (
	"errors"
	"fmt"
	"strings"
)

// NodeId is the position of a node in the graph's node arena.
type NodeId = int

var (
	ErrUnknownNode   = errors.New("graph: unknown node")
	ErrInvalidWeight = errors.New("graph: invalid edge weight")
	ErrNilNode       = errors.New("graph: nil node")
)

// Edge is a directed, labeled edge between two node values.
type Edge[N comparable, W comparable] struct {
	From   N
	To     N
	Weight W
}

func (e Edge[N, W]) String() string {
	return fmt.Sprintf("%v -> %v (%v)", e.From, e.To, e.Weight)
}

// GraphAsString returns a human readable dump of the graph.
func GraphAsString[N comparable, W comparable](g *Graph[N, W]) string {
	var sb strings.Builder

	// write number of nodes and number of arcs
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	sb.WriteString("#Nodes\n")
	// list all nodes structured as "id node"
	for i := 0; i < g.NodeCount(); i++ {
		sb.WriteString(fmt.Sprintf("%v %v\n", i, g.GetNode(i)))
	}

	sb.WriteString("#Edges\n")
	// list all arcs structured as "fromId targetId weight"
	for i := 0; i < g.NodeCount(); i++ {
		for _, arc := range g.GetArcsFrom(i) {
			sb.WriteString(fmt.Sprintf("%v %v %v\n", i, arc.Destination(), arc.Weight))
		}
	}
	return sb.String()
}
