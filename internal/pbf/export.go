package pbf

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/campus-paths/pkg/campus"
)

const (
	BuildingsFile = "campus_buildings.csv"
	PathsFile     = "campus_paths.csv"
)

// ExportCSV writes buildings and segments as campus_buildings.csv and campus_paths.csv into dir.
func ExportCSV(dir string, buildings []campus.Building, segments []campus.Segment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dir, BuildingsFile))
	if err != nil {
		return err
	}
	if err := campus.WriteBuildings(file, buildings); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	file, err = os.Create(filepath.Join(dir, PathsFile))
	if err != nil {
		return err
	}
	if err := campus.WriteSegments(file, segments); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ExportGeoJSON writes a feature collection with a point per building and a line
// string per segment, handy to check an import on a map.
func ExportGeoJSON(filename string, buildings []campus.Building, segments []campus.Segment) error {
	fc := geojson.NewFeatureCollection()
	for _, b := range buildings {
		f := geojson.NewFeature(b.Location)
		f.Properties["short_name"] = b.ShortName
		f.Properties["name"] = b.LongName
		fc.Append(f)
	}
	for _, s := range segments {
		f := geojson.NewFeature(orb.LineString{s.From, s.To})
		f.Properties["type"] = s.Type.String()
		f.Properties["distance"] = s.Distance
		fc.Append(f)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(fc)
}
