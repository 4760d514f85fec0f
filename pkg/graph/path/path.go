package path

import (
	"fmt"
	"strings"
)

// Path is an immutable route through a graph: a non-empty sequence of stops, the
// weight of every hop between consecutive stops, and the accumulated cost.
//
// The zero Path has no stops and represents the absence of a route.
type Path[N comparable] struct {
	stops   []N
	weights []float64
	cost    float64
}

// Segment is a single hop of a Path.
type Segment[N comparable] struct {
	Start N
	End   N
	Cost  float64
}

// NewPath creates the zero-cost path which consists of start only.
func NewPath[N comparable](start N) Path[N] {
	return Path[N]{stops: []N{start}, weights: []float64{}}
}

// Extend returns a new path which continues p to next over an edge with the given
// weight. p itself is not modified.
func (p Path[N]) Extend(next N, weight float64) Path[N] {
	// full slice expressions force append to copy, so extensions never share a tail
	stops := append(p.stops[:len(p.stops):len(p.stops)], next)
	weights := append(p.weights[:len(p.weights):len(p.weights)], weight)
	return Path[N]{stops: stops, weights: weights, cost: p.cost + weight}
}

func (p Path[N]) IsZero() bool  { return len(p.stops) == 0 }
func (p Path[N]) Cost() float64 { return p.cost }

// Hops returns the number of edges on the path.
func (p Path[N]) Hops() int { return len(p.weights) }

func (p Path[N]) Start() N {
	if p.IsZero() {
		var zero N
		return zero
	}
	return p.stops[0]
}

func (p Path[N]) End() N {
	if p.IsZero() {
		var zero N
		return zero
	}
	return p.stops[len(p.stops)-1]
}

// Waypoints returns a copy of the stops of the path, starting with Start and ending with End.
func (p Path[N]) Waypoints() []N {
	waypoints := make([]N, len(p.stops))
	copy(waypoints, p.stops)
	return waypoints
}

// Segments returns the hops of the path in order.
func (p Path[N]) Segments() []Segment[N] {
	segments := make([]Segment[N], 0, len(p.weights))
	for i, w := range p.weights {
		segments = append(segments, Segment[N]{Start: p.stops[i], End: p.stops[i+1], Cost: w})
	}
	return segments
}

func (p Path[N]) String() string {
	if p.IsZero() {
		return "<no path>"
	}
	var sb strings.Builder
	for i, stop := range p.stops {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(fmt.Sprint(stop))
	}
	sb.WriteString(fmt.Sprintf(" (%.3f)", p.cost))
	return sb.String()
}
