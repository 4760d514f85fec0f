package pbf

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/campus-paths/pkg/campus"
)

const campusOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="47.6530" lon="-122.3050"/>
  <node id="2" lat="47.6535" lon="-122.3050"/>
  <node id="3" lat="47.6535" lon="-122.3040"/>
  <node id="4" lat="47.6540" lon="-122.3040">
    <tag k="building" v="yes"/>
    <tag k="short_name" v="CSE"/>
    <tag k="name" v="Allen Center"/>
  </node>
  <node id="5" lat="47.6520" lon="-122.3060">
    <tag k="building" v="yes"/>
    <tag k="name" v="Nameless Shed"/>
  </node>
  <node id="10" lat="47.6500" lon="-122.3100"/>
  <node id="11" lat="47.6500" lon="-122.3090"/>
  <node id="12" lat="47.6510" lon="-122.3090"/>
  <node id="13" lat="47.6510" lon="-122.3100"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="101">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="motorway"/>
  </way>
  <way id="102">
    <nd ref="10"/>
    <nd ref="11"/>
    <nd ref="12"/>
    <nd ref="13"/>
    <nd ref="10"/>
    <tag k="building" v="university"/>
    <tag k="ref" v="MGH"/>
  </way>
</osm>
`

func importFixture(t *testing.T) *Importer {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "campus.osm")
	require.NoError(t, os.WriteFile(filename, []byte(campusOSM), 0o644))

	im := NewImporter(filename, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, im.Import(context.Background()))
	return im
}

func TestImportXML(t *testing.T) {
	im := importFixture(t)

	buildings := im.Buildings()
	require.Len(t, buildings, 2)
	assert.Equal(t, campus.Building{ShortName: "CSE", LongName: "Allen Center", Location: orb.Point{-122.3040, 47.6540}}, buildings[0])
	assert.Equal(t, "MGH", buildings[1].ShortName)
	assert.Equal(t, "MGH", buildings[1].LongName)
	assert.InDelta(t, -122.3095, buildings[1].Location.X(), 1e-9)
	assert.InDelta(t, 47.6505, buildings[1].Location.Y(), 1e-9)

	segments := im.Segments()
	require.Len(t, segments, 2, "only the footway is walkable")
	assert.Equal(t, orb.Point{-122.3050, 47.6530}, segments[0].From)
	assert.Equal(t, orb.Point{-122.3050, 47.6535}, segments[0].To)
	assert.Equal(t, campus.Footway, segments[0].Type)
	// 0.0005 degrees of latitude are roughly 55.6 meters
	assert.InDelta(t, 55.6, segments[0].Distance, 0.5)
}

func TestImportMissingFile(t *testing.T) {
	im := NewImporter(filepath.Join(t.TempDir(), "missing.osm.pbf"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, im.Import(context.Background()), "missing.osm.pbf")
}

func TestExportCSV(t *testing.T) {
	im := importFixture(t)
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, ExportCSV(dir, im.Buildings(), im.Segments()))

	buildings, err := campus.LoadBuildings(filepath.Join(dir, BuildingsFile))
	require.NoError(t, err)
	assert.Equal(t, im.Buildings(), buildings)

	segments, err := campus.LoadSegments(filepath.Join(dir, PathsFile))
	require.NoError(t, err)
	require.Len(t, segments, len(im.Segments()))
	for i, s := range segments {
		assert.Equal(t, im.Segments()[i].From, s.From)
		assert.Equal(t, im.Segments()[i].Distance, s.Distance)
	}

	m, err := campus.Build(buildings, segments, false)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Graph().NodeCount())
}

func TestExportGeoJSON(t *testing.T) {
	im := importFixture(t)
	filename := filepath.Join(t.TempDir(), "campus.geojson")
	require.NoError(t, ExportGeoJSON(filename, im.Buildings(), im.Segments()))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	var fc struct {
		Type     string `json:"type"`
		Features []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 4)
}
