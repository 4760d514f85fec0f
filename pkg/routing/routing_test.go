package routing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/pkg/campus"
	"github.com/natevvv/campus-paths/pkg/graph/path"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// A - B - C in a row, D is isolated and E lies next to C without being a node
func testMap(t *testing.T) *campus.Map {
	t.Helper()
	buildings := []campus.Building{
		{ShortName: "A", LongName: "Alpha", Location: orb.Point{0, 0}},
		{ShortName: "C", LongName: "Gamma", Location: orb.Point{2, 0}},
		{ShortName: "D", LongName: "Delta", Location: orb.Point{10, 10}},
		{ShortName: "E", LongName: "Epsilon", Location: orb.Point{2.1, 0.2}},
	}
	segments := []campus.Segment{
		{From: orb.Point{0, 0}, To: orb.Point{1, 0}, Distance: 1},
		{From: orb.Point{1, 0}, To: orb.Point{2, 0}, Distance: 1.5},
		{From: orb.Point{10, 10}, To: orb.Point{10, 10}, Distance: 0},
	}
	m, err := campus.Build(buildings, segments, false)
	require.NoError(t, err)
	return m
}

func TestComputeRoute(t *testing.T) {
	for _, navigator := range []string{"dijkstra", "path-frontier"} {
		r, err := NewRouter(testMap(t), navigator, config.SearchConfig{}, discard)
		require.NoError(t, err)

		route, err := r.ComputeRoute("A", "C")
		require.NoError(t, err, navigator)
		assert.True(t, route.Exists)
		assert.Equal(t, "Alpha", route.Origin.LongName)
		assert.Equal(t, 2.5, route.Length())
		assert.Equal(t, []orb.Point{{0, 0}, {1, 0}, {2, 0}}, route.Path.Waypoints())
		assert.Equal(t, 2, route.KPIs.SettledNodes, "the destination is not settled")
	}
}

func TestComputeRouteSameBuilding(t *testing.T) {
	r, err := NewRouter(testMap(t), "dijkstra", config.SearchConfig{}, discard)
	require.NoError(t, err)

	route, err := r.ComputeRoute("A", "A")
	require.NoError(t, err)
	assert.True(t, route.Exists)
	assert.Equal(t, 0.0, route.Length())
	assert.Equal(t, []orb.Point{{0, 0}}, route.Path.Waypoints())
}

func TestComputeRouteNotFound(t *testing.T) {
	r, err := NewRouter(testMap(t), "dijkstra", config.SearchConfig{}, discard)
	require.NoError(t, err)

	route, err := r.ComputeRoute("A", "D")
	require.NoError(t, err)
	assert.False(t, route.Exists)
	assert.True(t, route.Path.IsZero())
}

func TestComputeRouteUnknownBuilding(t *testing.T) {
	r, err := NewRouter(testMap(t), "dijkstra", config.SearchConfig{}, discard)
	require.NoError(t, err)

	_, err = r.ComputeRoute("A", "XYZ")
	assert.ErrorIs(t, err, ErrUnknownBuilding)
	assert.ErrorContains(t, err, "XYZ")

	_, err = r.ComputeRoute("QQQ", "XYZ")
	assert.ErrorIs(t, err, ErrUnknownBuilding)
	assert.ErrorContains(t, err, "QQQ")
}

func TestSnapToNearestNode(t *testing.T) {
	r, err := NewRouter(testMap(t), "dijkstra", config.SearchConfig{}, discard)
	require.NoError(t, err)

	route, err := r.ComputeRoute("A", "E")
	require.NoError(t, err)
	assert.True(t, route.Exists)
	assert.Equal(t, orb.Point{2, 0}, route.Path.End())
	assert.Equal(t, orb.Point{2.1, 0.2}, route.Destination.Location)

	noSnap := false
	r, err = NewRouter(testMap(t), "dijkstra", config.SearchConfig{SnapToNearest: &noSnap}, discard)
	require.NoError(t, err)
	_, err = r.ComputeRoute("A", "E")
	assert.ErrorIs(t, err, path.ErrUnknownNode)
}

func TestSearchLimit(t *testing.T) {
	r, err := NewRouter(testMap(t), "dijkstra", config.SearchConfig{MaxSettledNodes: 1}, discard)
	require.NoError(t, err)

	_, err = r.ComputeRoute("A", "C")
	assert.ErrorIs(t, err, path.ErrSearchLimit)
}

func TestUnknownNavigator(t *testing.T) {
	_, err := NewRouter(testMap(t), "contraction-hierarchies", config.SearchConfig{}, discard)
	assert.ErrorIs(t, err, ErrUnknownNavigator)
}

func TestBuildings(t *testing.T) {
	r, err := NewRouter(testMap(t), "", config.SearchConfig{}, discard)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "Alpha", "C": "Gamma", "D": "Delta", "E": "Epsilon"}, r.Buildings())
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	buildings := filepath.Join(dir, "campus_buildings.csv")
	paths := filepath.Join(dir, "campus_paths.csv")
	require.NoError(t, os.WriteFile(buildings, []byte("shortName,longName,x,y\nA,Alpha,0,0\nB,Beta,1,0\n"), 0o644))
	require.NoError(t, os.WriteFile(paths, []byte("x1,y1,x2,y2,distance\n0,0,1,0,1\n"), 0o644))

	m, err := LoadMap(context.Background(), config.DataConfig{Buildings: buildings, Paths: paths, OneWay: true}, discard)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Graph().NodeCount())
	assert.Equal(t, 1, m.Graph().ArcCount())

	_, err = LoadMap(context.Background(), config.DataConfig{Buildings: buildings, Paths: filepath.Join(dir, "nope.csv")}, discard)
	assert.Error(t, err)
}
