package campus

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/natevvv/campus-paths/pkg/graph"
)

var (
	ErrDuplicateBuilding = errors.New("campus: duplicate building")
	// ErrInvalidLocation is returned for points with a NaN or infinite coordinate.
	// Such points never compare equal and would turn into a new node on every use.
	ErrInvalidLocation = errors.New("campus: invalid location")
)

// Graph is the walkable network: segment end points connected by their distance.
type Graph = graph.Graph[orb.Point, float64]

// Map is the walkable campus graph together with the buildings on it. The graph nodes
// are the segment end points. Buildings are kept in a sibling table keyed by short name.
//
// A Map is immutable once built and may be shared between goroutines.
type Map struct {
	graph     *Graph
	buildings map[string]Building
	names     []string // sorted short names
}

// Build creates the campus map. Every segment adds an edge in both directions unless
// oneWay is set, in which case only From -> To is added.
func Build(buildings []Building, segments []Segment, oneWay bool) (*Map, error) {
	g := graph.NewGraph[orb.Point, float64]()
	for i, s := range segments {
		if !finite(s.From) || !finite(s.To) {
			return nil, fmt.Errorf("segment %d: %w: %v -> %v", i, ErrInvalidLocation, s.From, s.To)
		}
		if err := g.AddEdge(s.From, s.To, s.Distance); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if !oneWay {
			if err := g.AddEdge(s.To, s.From, s.Distance); err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
		}
	}

	m := &Map{
		graph:     g,
		buildings: make(map[string]Building, len(buildings)),
		names:     make([]string, 0, len(buildings)),
	}
	for _, b := range buildings {
		if !finite(b.Location) {
			return nil, fmt.Errorf("%w: %v at %v", ErrInvalidLocation, b.ShortName, b.Location)
		}
		if _, ok := m.buildings[b.ShortName]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateBuilding, b.ShortName)
		}
		m.buildings[b.ShortName] = b
		m.names = append(m.names, b.ShortName)
	}
	sort.Strings(m.names)

	return m, nil
}

func finite(p orb.Point) bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (m *Map) Graph() *Graph {
	return m.graph
}

func (m *Map) ShortNameExists(shortName string) bool {
	_, ok := m.buildings[shortName]
	return ok
}

func (m *Map) Building(shortName string) (Building, bool) {
	b, ok := m.buildings[shortName]
	return b, ok
}

// BuildingNames returns a fresh map of short name -> long name.
func (m *Map) BuildingNames() map[string]string {
	names := make(map[string]string, len(m.buildings))
	for short, b := range m.buildings {
		names[short] = b.LongName
	}
	return names
}

// Buildings returns all buildings ordered by short name.
func (m *Map) Buildings() []Building {
	buildings := make([]Building, 0, len(m.names))
	for _, name := range m.names {
		buildings = append(buildings, m.buildings[name])
	}
	return buildings
}
