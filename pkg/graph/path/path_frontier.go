package path

import (
	"log/slog"

	"github.com/natevvv/campus-paths/pkg/graph"
	"github.com/natevvv/campus-paths/pkg/queue"
	"github.com/natevvv/campus-paths/pkg/slice"
)

// PathFrontier is the straightforward formulation of Dijkstra: the frontier holds whole
// candidate paths and every relaxation extends the popped path by one edge.
// It repeats shared prefixes and is kept as reference for Dijkstra.
type PathFrontier[N comparable] struct {
	g             *graph.Graph[N, float64]
	searchOptions SearchOptions[N]
	logger        *slog.Logger
}

type frontierItem[N comparable] struct {
	path   Path[N]
	nodeId graph.NodeId // node id of path.End()
	seq    int
}

func NewPathFrontier[N comparable](g *graph.Graph[N, float64]) *PathFrontier[N] {
	return &PathFrontier[N]{g: g, searchOptions: defaultSearchOptions[N]()}
}

func (f *PathFrontier[N]) SetNodeOrder(less func(a, b N) bool) { f.searchOptions.nodeOrder = less }
func (f *PathFrontier[N]) SetCostUpperBound(bound float64)     { f.searchOptions.costUpperBound = bound }
func (f *PathFrontier[N]) SetMaxSettledNodes(n int)            { f.searchOptions.maxNumSettledNodes = n }
func (f *PathFrontier[N]) SetLogger(logger *slog.Logger)       { f.logger = logger }

func (f *PathFrontier[N]) GetGraph() *graph.Graph[N, float64] { return f.g }

func (f *PathFrontier[N]) ShortestPath(origin, destination N) (Path[N], bool, error) {
	result, err := f.Search(origin, destination)
	return result.Path, result.Found, err
}

func (f *PathFrontier[N]) Search(origin, destination N) (Result[N], error) {
	originId, destinationId, err := resolveEndpoints(f.g, origin, destination)
	if err != nil {
		return Result[N]{}, err
	}

	ranking := newNodeRanking(f.g, f.searchOptions.nodeOrder)
	active := queue.NewMinHeap(func(a, b frontierItem[N]) bool {
		return ranking.before(a.path.Cost(), a.nodeId, a.seq, b.path.Cost(), b.nodeId, b.seq)
	})
	finished := slice.MakeFixedSizeSlice(f.g.NodeCount())

	var kpis SearchKPIs
	seq := 0
	push := func(p Path[N], nodeId graph.NodeId) {
		active.Push(frontierItem[N]{path: p, nodeId: nodeId, seq: seq})
		seq++
		kpis.PqPushes++
	}

	push(NewPath(origin), originId)

	for active.Len() > 0 {
		minPath := active.Pop()
		kpis.PqPops++

		if finished.Contains(minPath.nodeId) {
			continue
		}
		if minPath.path.Cost() > f.searchOptions.costUpperBound {
			return Result[N]{KPIs: kpis}, ErrSearchLimit
		}
		if minPath.nodeId == destinationId {
			if f.logger != nil {
				f.logger.Debug("found path", "path", minPath.path.String())
			}
			return Result[N]{Path: minPath.path, Found: true, KPIs: kpis}, nil
		}
		if kpis.SettledNodes >= f.searchOptions.maxNumSettledNodes {
			return Result[N]{KPIs: kpis}, ErrSearchLimit
		}

		finished.Add(minPath.nodeId)
		kpis.SettledNodes++

		for _, arc := range f.g.GetArcsFrom(minPath.nodeId) {
			kpis.RelaxationAttempts++
			if finished.Contains(arc.To) {
				continue
			}
			push(minPath.path.Extend(f.g.GetNode(arc.To), arc.Weight), arc.To)
			kpis.RelaxedEdges++
		}
	}

	return Result[N]{KPIs: kpis}, nil
}
