package config

import "time"

// Config is the top level configuration of the campus services.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Data    DataConfig    `yaml:"data"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

type HTTPConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// DataConfig names the files the campus map is built from. Either both CSV files or
// an OSM extract (.osm.pbf or .osm) must be set.
type DataConfig struct {
	Buildings string `yaml:"buildings"` // campus_buildings.csv
	Paths     string `yaml:"paths"`     // campus_paths.csv
	OSM       string `yaml:"osm"`
	OneWay    bool   `yaml:"one_way"` // add every segment in its given direction only
	Watch     bool   `yaml:"watch"`   // rebuild the map when a data file changes
}

type SearchConfig struct {
	MaxSettledNodes int   `yaml:"max_settled_nodes"` // 0 means unbounded
	SnapToNearest   *bool `yaml:"snap_to_nearest"`
}

// Snap reports whether buildings off the graph are attached to their nearest node.
// Defaults to true.
func (s SearchConfig) Snap() bool {
	return s.SnapToNearest == nil || *s.SnapToNearest
}

type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text or json
	IncludeCaller bool   `yaml:"include_caller"`
}

// Files returns the data files the map is built from.
func (d DataConfig) Files() []string {
	if d.OSM != "" {
		return []string{d.OSM}
	}
	return []string{d.Buildings, d.Paths}
}
