package path

import (
	"fmt"
	"math"

	"github.com/natevvv/campus-paths/pkg/graph"
)

// frontier entry of the predecessor based search
type DijkstraItem struct {
	nodeId   graph.NodeId // node id of this item in the graph
	distance float64      // distance to origin of this node
	seq      int          // push sequence, last resort for ties
}

type SearchOptions[N comparable] struct {
	nodeOrder          func(a, b N) bool // total order on nodes to break ties between equal distances
	costUpperBound     float64           // upper bound of cost from origin to destination
	maxNumSettledNodes int               // maximum number of settled nodes before search is terminated
}

func defaultSearchOptions[N comparable]() SearchOptions[N] {
	return SearchOptions[N]{costUpperBound: math.Inf(1), maxNumSettledNodes: math.MaxInt}
}

// nodeRanking orders the nodes of one search. Without an explicit order the nodes are
// compared by their fmt.Sprint representation, which is cached per node id.
type nodeRanking[N comparable] struct {
	g      *graph.Graph[N, float64]
	less   func(a, b N) bool
	keys   []string
	cached []bool
}

func newNodeRanking[N comparable](g *graph.Graph[N, float64], less func(a, b N) bool) *nodeRanking[N] {
	r := &nodeRanking[N]{g: g, less: less}
	if less == nil {
		r.keys = make([]string, g.NodeCount())
		r.cached = make([]bool, g.NodeCount())
	}
	return r
}

func (r *nodeRanking[N]) key(id graph.NodeId) string {
	if !r.cached[id] {
		if s, ok := any(r.g.GetNode(id)).(string); ok {
			r.keys[id] = s
		} else {
			r.keys[id] = fmt.Sprint(r.g.GetNode(id))
		}
		r.cached[id] = true
	}
	return r.keys[id]
}

// before orders frontier entries by distance, then node, then push sequence.
func (r *nodeRanking[N]) before(distanceA float64, a graph.NodeId, seqA int, distanceB float64, b graph.NodeId, seqB int) bool {
	if distanceA != distanceB {
		return distanceA < distanceB
	}
	if a != b {
		if r.less != nil {
			nodeA, nodeB := r.g.GetNode(a), r.g.GetNode(b)
			if r.less(nodeA, nodeB) {
				return true
			}
			if r.less(nodeB, nodeA) {
				return false
			}
		} else if keyA, keyB := r.key(a), r.key(b); keyA != keyB {
			return keyA < keyB
		}
	}
	return seqA < seqB
}
