package routing

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/internal/metrics"
	"github.com/natevvv/campus-paths/pkg/campus"
	"github.com/natevvv/campus-paths/pkg/graph/path"
)

var (
	ErrUnknownBuilding  = errors.New("routing: unknown building")
	ErrUnknownNavigator = errors.New("routing: unknown navigator")
)

// Route between two buildings
type Route struct {
	Origin      campus.Building
	Destination campus.Building
	Exists      bool                 // whether a walkable path was found
	Path        path.Path[orb.Point] // starts and ends at the (snapped) building locations
	KPIs        path.SearchKPIs
}

// Length returns the walking distance of the route, 0 if it does not exist.
func (r Route) Length() float64 {
	return r.Path.Cost()
}

// Router answers route queries between buildings of one campus map.
// It is safe for concurrent use.
type Router struct {
	campusMap *campus.Map
	navigator path.Navigator[orb.Point]
	snapped   map[string]orb.Point // building -> graph node used for routing
	logger    *slog.Logger
}

// NewRouter creates a router using the given navigator, "dijkstra" or "path-frontier".
// With snapping enabled, buildings which are not located on a graph node are routed
// from and to their nearest node.
func NewRouter(m *campus.Map, navigator string, search config.SearchConfig, logger *slog.Logger) (*Router, error) {
	r := &Router{
		campusMap: m,
		snapped:   make(map[string]orb.Point),
		logger:    logger,
	}
	if err := r.setNavigator(navigator, search.MaxSettledNodes); err != nil {
		return nil, err
	}

	if search.Snap() && m.Graph().NodeCount() > 0 {
		for _, b := range m.Buildings() {
			if m.Graph().ContainsNode(b.Location) {
				continue
			}
			nearest := r.findNearestNode(b.Location)
			r.snapped[b.ShortName] = nearest
			logger.Debug("snapped building to nearest node", "building", b.ShortName, "location", b.Location, "node", nearest)
		}
	}
	return r, nil
}

func (r *Router) setNavigator(navigatorType string, maxSettledNodes int) error {
	switch navigatorType {
	case "", "dijkstra":
		d := path.NewDijkstra(r.campusMap.Graph())
		if maxSettledNodes > 0 {
			d.SetMaxSettledNodes(maxSettledNodes)
		}
		r.navigator = d
	case "path-frontier":
		f := path.NewPathFrontier(r.campusMap.Graph())
		if maxSettledNodes > 0 {
			f.SetMaxSettledNodes(maxSettledNodes)
		}
		r.navigator = f
	default:
		return fmt.Errorf("%w: %v", ErrUnknownNavigator, navigatorType)
	}
	return nil
}

func (r *Router) Map() *campus.Map {
	return r.campusMap
}

// Buildings returns short name -> long name of every building.
func (r *Router) Buildings() map[string]string {
	return r.campusMap.BuildingNames()
}

// ComputeRoute finds the shortest walk between two buildings given by short name.
// Unknown names are reported with ErrUnknownBuilding before any search is done.
// A missing connection is not an error, Route.Exists is false then.
func (r *Router) ComputeRoute(origin, destination string) (Route, error) {
	fromOk, toOk := r.campusMap.ShortNameExists(origin), r.campusMap.ShortNameExists(destination)
	switch {
	case !fromOk && !toOk:
		return Route{}, fmt.Errorf("%w: %q, %q", ErrUnknownBuilding, origin, destination)
	case !fromOk:
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownBuilding, origin)
	case !toOk:
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownBuilding, destination)
	}
	from, _ := r.campusMap.Building(origin)
	to, _ := r.campusMap.Building(destination)

	start := time.Now()
	result, err := r.navigator.Search(r.routingNode(from), r.routingNode(to))
	metrics.RouteDuration.Observe(float64(time.Since(start).Microseconds()) / 1000)
	metrics.SettledNodes.Observe(float64(result.KPIs.SettledNodes))

	route := Route{Origin: from, Destination: to, KPIs: result.KPIs}
	if err != nil {
		// a building off the graph without snapping ends up here as well
		return route, err
	}
	route.Exists = result.Found
	route.Path = result.Path

	r.logger.Debug("computed route",
		"origin", origin,
		"destination", destination,
		"exists", route.Exists,
		"length", route.Length(),
		"settled_nodes", result.KPIs.SettledNodes,
	)
	return route, nil
}

func (r *Router) routingNode(b campus.Building) orb.Point {
	if node, ok := r.snapped[b.ShortName]; ok {
		return node
	}
	return b.Location
}

// linear scan, buildings are snapped once when the router is created
func (r *Router) findNearestNode(point orb.Point) orb.Point {
	minDist := math.MaxFloat64
	var nearestNode orb.Point
	for _, node := range r.campusMap.Graph().Nodes() {
		if dist := planar.DistanceSquared(point, node); dist < minDist {
			minDist = dist
			nearestNode = node
		}
	}
	return nearestNode
}
