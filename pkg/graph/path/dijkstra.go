package path

import (
	"log/slog"
	"math"

	"github.com/natevvv/campus-paths/pkg/graph"
	"github.com/natevvv/campus-paths/pkg/queue"
	"github.com/natevvv/campus-paths/pkg/slice"
)

// Dijkstra computes shortest paths by tracking the best known distance and the
// predecessor of every node. The path is reconstructed once the destination is settled.
//
// A Dijkstra only holds configuration. All state of a search is allocated per call, so
// one instance may serve concurrent searches on a graph which is no longer mutated.
// Configure it before the first search.
type Dijkstra[N comparable] struct {
	g             *graph.Graph[N, float64]
	searchOptions SearchOptions[N]
	logger        *slog.Logger // debug output, nil disables logging
}

func NewDijkstra[N comparable](g *graph.Graph[N, float64]) *Dijkstra[N] {
	return &Dijkstra[N]{g: g, searchOptions: defaultSearchOptions[N]()}
}

// SetNodeOrder replaces the default tie-break order (fmt.Sprint representation) of nodes
// whose distances are equal. less must be a strict total order.
func (d *Dijkstra[N]) SetNodeOrder(less func(a, b N) bool) { d.searchOptions.nodeOrder = less }

// SetCostUpperBound stops the search once every remaining candidate is more expensive than bound.
func (d *Dijkstra[N]) SetCostUpperBound(bound float64) { d.searchOptions.costUpperBound = bound }

// SetMaxSettledNodes stops the search once n nodes are settled without reaching the destination.
func (d *Dijkstra[N]) SetMaxSettledNodes(n int) { d.searchOptions.maxNumSettledNodes = n }

func (d *Dijkstra[N]) SetLogger(logger *slog.Logger) { d.logger = logger }

func (d *Dijkstra[N]) GetGraph() *graph.Graph[N, float64] { return d.g }

func (d *Dijkstra[N]) ShortestPath(origin, destination N) (Path[N], bool, error) {
	result, err := d.Search(origin, destination)
	return result.Path, result.Found, err
}

func (d *Dijkstra[N]) Search(origin, destination N) (Result[N], error) {
	originId, destinationId, err := resolveEndpoints(d.g, origin, destination)
	if err != nil {
		return Result[N]{}, err
	}
	if originId == destinationId {
		return Result[N]{Path: NewPath(origin), Found: true}, nil
	}

	nodeCount := d.g.NodeCount()
	distances := make([]float64, nodeCount)
	predecessors := make([]graph.NodeId, nodeCount)
	predecessorWeights := make([]float64, nodeCount)
	for i := range distances {
		distances[i] = math.Inf(1)
		predecessors[i] = -1
	}
	settled := slice.MakeFixedSizeSlice(nodeCount)

	ranking := newNodeRanking(d.g, d.searchOptions.nodeOrder)
	minHeap := queue.NewMinHeap(func(a, b DijkstraItem) bool {
		return ranking.before(a.distance, a.nodeId, a.seq, b.distance, b.nodeId, b.seq)
	})

	var kpis SearchKPIs
	seq := 0
	push := func(item DijkstraItem) {
		item.seq = seq
		seq++
		minHeap.Push(item)
		kpis.PqPushes++
	}

	distances[originId] = 0
	push(DijkstraItem{nodeId: originId, distance: 0})

	for minHeap.Len() > 0 {
		current := minHeap.Pop()
		kpis.PqPops++

		if settled.Contains(current.nodeId) {
			// stale entry, the node was settled with a lower or equal distance
			continue
		}

		if current.distance > d.searchOptions.costUpperBound {
			// every remaining candidate exceeds the allowed cost
			if d.logger != nil {
				d.logger.Debug("exceeded cost upper bound", "distance", current.distance, "bound", d.searchOptions.costUpperBound)
			}
			return Result[N]{KPIs: kpis}, ErrSearchLimit
		}

		if current.nodeId == destinationId {
			if d.logger != nil {
				d.logger.Debug("found path", "origin", origin, "destination", destination, "distance", current.distance)
			}
			path := d.reconstruct(originId, destinationId, predecessors, predecessorWeights)
			return Result[N]{Path: path, Found: true, KPIs: kpis}, nil
		}

		if kpis.SettledNodes >= d.searchOptions.maxNumSettledNodes {
			if d.logger != nil {
				d.logger.Debug("exceeded max settled nodes", "settled", kpis.SettledNodes)
			}
			return Result[N]{KPIs: kpis}, ErrSearchLimit
		}

		settled.Add(current.nodeId)
		kpis.SettledNodes++
		if d.logger != nil {
			d.logger.Debug("settling node", "node", d.g.GetNode(current.nodeId), "distance", current.distance)
		}

		for _, arc := range d.g.GetArcsFrom(current.nodeId) {
			kpis.RelaxationAttempts++
			successor := arc.Destination()
			if settled.Contains(successor) {
				continue
			}
			// only strictly better distances replace the predecessor, so among equally
			// short alternatives the one found first is kept
			if distance := current.distance + arc.Weight; distance < distances[successor] {
				distances[successor] = distance
				predecessors[successor] = current.nodeId
				predecessorWeights[successor] = arc.Weight
				push(DijkstraItem{nodeId: successor, distance: distance})
				kpis.RelaxedEdges++
			}
		}
	}

	return Result[N]{KPIs: kpis}, nil
}

func (d *Dijkstra[N]) reconstruct(originId, destinationId graph.NodeId, predecessors []graph.NodeId, weights []float64) Path[N] {
	ids := make([]graph.NodeId, 0)
	for nodeId := destinationId; nodeId != originId; nodeId = predecessors[nodeId] {
		ids = append(ids, nodeId)
	}
	slice.ReverseInPlace(ids)

	path := NewPath(d.g.GetNode(originId))
	for _, nodeId := range ids {
		path = path.Extend(d.g.GetNode(nodeId), weights[nodeId])
	}
	return path
}
