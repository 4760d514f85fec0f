package campus

import (
	"fmt"

	"github.com/paulmach/orb"
)

type PathType int

const (
	Unknown PathType = iota
	Footway
	Path
	Pedestrian
	Steps
	Service
)

func (p PathType) String() string {
	return []string{"Unknown", "Footway", "Path", "Pedestrian", "Steps", "Service"}[p]
}

// PathTypeOf maps an OSM highway value to a walkable PathType, Unknown if it is not walkable.
func PathTypeOf(highway string) PathType {
	switch highway {
	case "footway":
		return Footway
	case "path":
		return Path
	case "pedestrian":
		return Pedestrian
	case "steps":
		return Steps
	case "service":
		return Service
	default:
		return Unknown
	}
}

// Segment is a walkable straight connection between two points.
type Segment struct {
	From     orb.Point
	To       orb.Point
	Distance float64
	Type     PathType // Unknown for segments read from CSV
}

func (s Segment) String() string {
	return fmt.Sprintf("%v -> %v (%.3f)", s.From, s.To, s.Distance)
}
