package path

import (
	"errors"
	"fmt"

	"github.com/natevvv/campus-paths/pkg/graph"
)

var (
	// ErrUnknownNode is returned when the origin or destination of a search is not a
	// node of the graph. It wraps graph.ErrUnknownNode.
	ErrUnknownNode = fmt.Errorf("path: %w", graph.ErrUnknownNode)
	// ErrSearchLimit is returned when a configured bound stopped the search before
	// the destination was settled.
	ErrSearchLimit = errors.New("path: search limit exceeded")
)

type Navigator[N comparable] interface {
	ShortestPath(origin, destination N) (Path[N], bool, error) // Compute the shortest path. The bool is false if no path exists
	Search(origin, destination N) (Result[N], error)           // Same as ShortestPath, but also reports the KPIs of the search
	GetGraph() *graph.Graph[N, float64]                        // Get the used graph
}

// Result of a single search.
type Result[N comparable] struct {
	Path  Path[N]
	Found bool
	KPIs  SearchKPIs
}

type SearchKPIs struct {
	PqPops             int // amount of pops which were performed on the priority queue
	PqPushes           int // amount of pushes to the priority queue
	RelaxationAttempts int // arcs looked at while settling nodes
	RelaxedEdges       int // arcs which produced a new frontier entry
	SettledNodes       int // number of settled nodes
}

// ShortestPath computes the minimum cost path from origin to destination in g with the
// default Dijkstra configuration.
func ShortestPath[N comparable](g *graph.Graph[N, float64], origin, destination N) (Path[N], bool, error) {
	return NewDijkstra(g).ShortestPath(origin, destination)
}

// resolveEndpoints checks both endpoints before any search work is done.
func resolveEndpoints[N comparable](g *graph.Graph[N, float64], origin, destination N) (graph.NodeId, graph.NodeId, error) {
	originId, originOk := g.NodeId(origin)
	destinationId, destinationOk := g.NodeId(destination)
	switch {
	case !originOk && !destinationOk:
		return -1, -1, fmt.Errorf("%w: %v, %v", ErrUnknownNode, origin, destination)
	case !originOk:
		return -1, -1, fmt.Errorf("%w: %v", ErrUnknownNode, origin)
	case !destinationOk:
		return -1, -1, fmt.Errorf("%w: %v", ErrUnknownNode, destination)
	}
	return originId, destinationId, nil
}
