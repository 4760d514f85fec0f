// SPDX-License-Identifier: MIT

package openapi_server

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Segment struct {
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Cost  float64 `json:"cost"`
}

// RouteResponse is the walk between two buildings. Path is empty when both are the same.
type RouteResponse struct {
	Start Point     `json:"start"`
	Cost  float64   `json:"cost"`
	Path  []Segment `json:"path"`
}
