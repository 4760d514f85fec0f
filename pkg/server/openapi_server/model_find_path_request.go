// SPDX-License-Identifier: MIT

package openapi_server

const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
)

type FindPathRequest struct {
	Start  string
	End    string
	Format string // json (default) or geojson
}

// AssertFindPathRequestRequired checks if the required fields are not zero-ed
func AssertFindPathRequestRequired(obj FindPathRequest) error {
	elements := []struct {
		name  string
		value interface{}
	}{
		{"start", obj.Start},
		{"end", obj.End},
	}
	for _, el := range elements {
		if isZero := IsZeroValue(el.value); isZero {
			return &RequiredError{Field: el.name}
		}
	}
	return nil
}
