package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/internal/logging"
	"github.com/natevvv/campus-paths/internal/pbf"
	"github.com/natevvv/campus-paths/pkg/campus"
)

var flagOsmFile = flag.String("f", "campus.osm.pbf", "OSM extract, .osm.pbf or .osm")
var flagOutputDir = flag.String("o", ".", "Directory for campus_buildings.csv and campus_paths.csv")
var flagGeoJSON = flag.String("geojson", "", "Also write the import as GeoJSON feature collection")
var flagLogLevel = flag.String("log-level", "info", "Log level")

func main() {
	flag.Parse()
	logger := logging.New(config.LoggingConfig{Level: *flagLogLevel, Format: "text"})

	start := time.Now()

	importer := pbf.NewImporter(*flagOsmFile, logger)
	if err := importer.Import(context.Background()); err != nil {
		logger.Error("import failed", "err", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Printf("[TIME] Import: %s\n", elapsed)
	fmt.Printf("Buildings: %d\n", len(importer.Buildings()))
	fmt.Printf("Path segments: %d\n", len(importer.Segments()))

	// fail early on data the server would reject
	if _, err := campus.Build(importer.Buildings(), importer.Segments(), false); err != nil {
		logger.Error("imported data does not form a campus map", "err", err)
		os.Exit(1)
	}

	start = time.Now()

	if err := pbf.ExportCSV(*flagOutputDir, importer.Buildings(), importer.Segments()); err != nil {
		logger.Error("export failed", "err", err)
		os.Exit(1)
	}
	if *flagGeoJSON != "" {
		if err := pbf.ExportGeoJSON(*flagGeoJSON, importer.Buildings(), importer.Segments()); err != nil {
			logger.Error("geojson export failed", "err", err)
			os.Exit(1)
		}
	}

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Export: %s\n", elapsed)
	logger.Info("exported campus data", "dir", *flagOutputDir)
}
