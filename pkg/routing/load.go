package routing

import (
	"context"
	"log/slog"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/internal/pbf"
	"github.com/natevvv/campus-paths/pkg/campus"
)

// LoadMap reads the configured data files and builds a fresh campus map.
func LoadMap(ctx context.Context, data config.DataConfig, logger *slog.Logger) (*campus.Map, error) {
	var buildings []campus.Building
	var segments []campus.Segment

	if data.OSM != "" {
		importer := pbf.NewImporter(data.OSM, logger)
		if err := importer.Import(ctx); err != nil {
			return nil, err
		}
		buildings, segments = importer.Buildings(), importer.Segments()
	} else {
		var err error
		if buildings, err = campus.LoadBuildings(data.Buildings); err != nil {
			return nil, err
		}
		if segments, err = campus.LoadSegments(data.Paths); err != nil {
			return nil, err
		}
	}

	m, err := campus.Build(buildings, segments, data.OneWay)
	if err != nil {
		return nil, err
	}
	logger.Info("campus map built",
		"buildings", len(buildings),
		"segments", len(segments),
		"nodes", m.Graph().NodeCount(),
		"arcs", m.Graph().ArcCount(),
	)
	return m, nil
}
