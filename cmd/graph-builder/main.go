package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/internal/logging"
	"github.com/natevvv/campus-paths/pkg/routing"
)

// Builds the campus graph from the data files and writes it as a text dump:
// node count, arc count, then the nodes and the arcs by node id.
func main() {
	buildings := flag.String("buildings", "campus_buildings.csv", "Campus buildings CSV")
	paths := flag.String("paths", "campus_paths.csv", "Campus paths CSV")
	osmFile := flag.String("osm", "", "Build from an OSM extract instead of the CSV files")
	oneWay := flag.Bool("one-way", false, "Add every path in its given direction only")
	output := flag.String("o", "campus_graph.txt", "Output file, - for stdout")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger := logging.New(config.LoggingConfig{Level: *logLevel, Format: "text"})

	data := config.DataConfig{Buildings: *buildings, Paths: *paths, OneWay: *oneWay}
	if *osmFile != "" {
		data = config.DataConfig{OSM: *osmFile, OneWay: *oneWay}
	}

	start := time.Now()
	m, err := routing.LoadMap(context.Background(), data, logger)
	if err != nil {
		logger.Error("failed to build campus map", "err", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "[TIME] Build graph: %s\n", elapsed)

	start = time.Now()
	out := os.Stdout
	if *output != "-" {
		out, err = os.Create(*output)
		if err != nil {
			logger.Error("failed to create output", "err", err)
			os.Exit(1)
		}
		defer out.Close()
	}
	writer := bufio.NewWriter(out)
	writer.WriteString(m.Graph().AsString())
	if err := writer.Flush(); err != nil {
		logger.Error("failed to write graph", "err", err)
		os.Exit(1)
	}
	elapsed = time.Since(start)
	fmt.Fprintf(os.Stderr, "[TIME] Export graph: %s\n", elapsed)
	fmt.Fprintf(os.Stderr, "Nodes: %d, arcs: %d, buildings: %d\n", m.Graph().NodeCount(), m.Graph().ArcCount(), len(m.Buildings()))
}
