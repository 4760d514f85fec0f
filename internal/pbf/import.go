package pbf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"

	"github.com/natevvv/campus-paths/pkg/campus"
)

// Importer extracts campus buildings and walkable segments from an OSM extract.
//
// Buildings are nodes or ways tagged building which carry a short_name (or ref) tag.
// Way buildings are located at the centroid of their outline. Segments are the
// consecutive node pairs of ways whose highway tag is walkable, see campus.PathTypeOf.
// Points are orb.Point{lon, lat} and distances are in meters.
type Importer struct {
	filename  string
	nodes     map[int64]orb.Point
	buildings []campus.Building
	segments  []campus.Segment
	shortName map[string]struct{}
	skipped   int
	logger    *slog.Logger
}

func NewImporter(filename string, logger *slog.Logger) *Importer {
	return &Importer{
		filename:  filename,
		nodes:     make(map[int64]orb.Point),
		buildings: make([]campus.Building, 0),
		segments:  make([]campus.Segment, 0),
		shortName: make(map[string]struct{}),
		logger:    logger,
	}
}

// Import reads the file, .osm.pbf files with osmpbf and everything else as OSM XML.
func (im *Importer) Import(ctx context.Context) error {
	var err error
	if strings.HasSuffix(im.filename, ".pbf") {
		err = im.importPBF()
	} else {
		err = im.importXML(ctx)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", im.filename, err)
	}
	im.logger.Info("imported osm extract",
		"file", im.filename,
		"nodes", len(im.nodes),
		"buildings", len(im.buildings),
		"segments", len(im.segments),
		"skipped_buildings", im.skipped,
	)
	return nil
}

func (im *Importer) Buildings() []campus.Building {
	return im.buildings
}

func (im *Importer) Segments() []campus.Segment {
	return im.segments
}

// ways reference nodes, so the node coordinates are collected in a first pass
func (im *Importer) importPBF() error {
	if err := im.decodePBF(func(v interface{}) {
		if node, ok := v.(*osmpbf.Node); ok {
			im.nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}); err != nil {
		return err
	}

	return im.decodePBF(func(v interface{}) {
		switch v := v.(type) {
		case *osmpbf.Node:
			im.handleNode(v.ID, mapTags(v.Tags))
		case *osmpbf.Way:
			im.handleWay(v.NodeIDs, mapTags(v.Tags))
		}
	})
}

func (im *Importer) decodePBF(handle func(v interface{})) error {
	file, err := os.Open(im.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		handle(v)
	}
}

func (im *Importer) importXML(ctx context.Context) error {
	file, err := os.Open(im.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmxml.New(ctx, file)
	defer scanner.Close()

	// OSM XML lists nodes before ways, ways are still buffered to not depend on it
	ways := make([]*osm.Way, 0)
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			im.nodes[int64(o.ID)] = orb.Point{o.Lon, o.Lat}
			im.handleNode(int64(o.ID), o.Tags.Find)
		case *osm.Way:
			ways = append(ways, o)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	for _, way := range ways {
		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, wn := range way.Nodes {
			nodeIDs = append(nodeIDs, int64(wn.ID))
		}
		im.handleWay(nodeIDs, way.Tags.Find)
	}
	return nil
}

func mapTags(tags map[string]string) func(string) string {
	return func(key string) string { return tags[key] }
}

func (im *Importer) handleNode(id int64, tag func(string) string) {
	if tag("building") == "" {
		return
	}
	if point, ok := im.nodes[id]; ok {
		im.addBuilding(point, tag)
	}
}

func (im *Importer) handleWay(nodeIDs []int64, tag func(string) string) {
	points := make([]orb.Point, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		if point, ok := im.nodes[nodeID]; ok {
			points = append(points, point)
		}
	}
	if len(points) == 0 {
		return
	}

	if tag("building") != "" {
		location := points[0]
		if len(points) > 2 {
			location, _ = planar.CentroidArea(orb.Ring(points))
		}
		im.addBuilding(location, tag)
		return
	}

	pathType := campus.PathTypeOf(tag("highway"))
	if pathType == campus.Unknown {
		return
	}
	for i := 1; i < len(points); i++ {
		im.segments = append(im.segments, campus.Segment{
			From:     points[i-1],
			To:       points[i],
			Distance: geo.Distance(points[i-1], points[i]),
			Type:     pathType,
		})
	}
}

func (im *Importer) addBuilding(location orb.Point, tag func(string) string) {
	shortName := tag("short_name")
	if shortName == "" {
		shortName = tag("ref")
	}
	if shortName == "" {
		im.skipped++
		return
	}
	if _, ok := im.shortName[shortName]; ok {
		im.logger.Debug("skipping duplicate building", "short_name", shortName)
		im.skipped++
		return
	}
	longName := tag("name")
	if longName == "" {
		longName = shortName
	}
	im.shortName[shortName] = struct{}{}
	im.buildings = append(im.buildings, campus.Building{ShortName: shortName, LongName: longName, Location: location})
}
