package openapi_server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/pkg/campus"
	"github.com/natevvv/campus-paths/pkg/routing"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testRouter(t *testing.T, search config.SearchConfig) *routing.Router {
	t.Helper()
	buildings := []campus.Building{
		{ShortName: "BAG", LongName: "Bagley Hall", Location: orb.Point{0, 0}},
		{ShortName: "CSE", LongName: "Allen Center", Location: orb.Point{2, 0}},
		{ShortName: "ISO", LongName: "Island", Location: orb.Point{9, 9}},
	}
	segments := []campus.Segment{
		{From: orb.Point{0, 0}, To: orb.Point{1, 0}, Distance: 1},
		{From: orb.Point{1, 0}, To: orb.Point{2, 0}, Distance: 2},
		{From: orb.Point{0, 0}, To: orb.Point{2, 0}, Distance: 5},
		{From: orb.Point{9, 9}, To: orb.Point{9, 9}, Distance: 0},
	}
	m, err := campus.Build(buildings, segments, false)
	require.NoError(t, err)
	r, err := routing.NewRouter(m, "dijkstra", search, discard)
	require.NoError(t, err)
	return r
}

func newTestServer(t *testing.T, service *DefaultApiService) http.Handler {
	t.Helper()
	return CORS([]string{"http://localhost:3000"})(NewRouter(discard,
		NewDefaultApiController(service),
		NewHealthApiController(service),
	))
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetBuildings(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	rec := get(t, handler, "/buildings")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=UTF-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var buildings map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buildings))
	assert.Equal(t, map[string]string{"BAG": "Bagley Hall", "CSE": "Allen Center", "ISO": "Island"}, buildings)
}

func TestFindPath(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	rec := get(t, handler, "/findPath?start=BAG&end=CSE")
	require.Equal(t, http.StatusOK, rec.Code)

	var route RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.Equal(t, RouteResponse{
		Start: Point{X: 0, Y: 0},
		Cost:  3,
		Path: []Segment{
			{Start: Point{X: 0, Y: 0}, End: Point{X: 1, Y: 0}, Cost: 1},
			{Start: Point{X: 1, Y: 0}, End: Point{X: 2, Y: 0}, Cost: 2},
		},
	}, route)
}

func TestFindPathSameBuilding(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	rec := get(t, handler, "/findPath?start=BAG&end=BAG")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"start":{"x":0,"y":0},"cost":0,"path":[]}`, rec.Body.String())
}

func TestFindPathGeoJSON(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	rec := get(t, handler, "/findPath?start=BAG&end=CSE&format=geojson")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var feature struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feature))
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "LineString", feature.Geometry.Type)
	assert.Equal(t, [][2]float64{{0, 0}, {1, 0}, {2, 0}}, feature.Geometry.Coordinates)
	assert.Equal(t, 3.0, feature.Properties["cost"])
	assert.Equal(t, "CSE", feature.Properties["end"])
}

func TestFindPathErrors(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	tests := []struct {
		name   string
		target string
		status int
		errMsg string
	}{
		{"missing start", "/findPath?end=CSE", http.StatusBadRequest, "start"},
		{"missing end", "/findPath?start=CSE", http.StatusBadRequest, "end"},
		{"unknown start", "/findPath?start=XYZ&end=CSE", http.StatusBadRequest, "XYZ"},
		{"unknown end", "/findPath?start=BAG&end=XYZ", http.StatusBadRequest, "XYZ"},
		{"format", "/findPath?start=BAG&end=CSE&format=kml", http.StatusBadRequest, "kml"},
		{"unreachable", "/findPath?start=BAG&end=ISO", http.StatusNotFound, "no path found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handler, tt.target)
			assert.Equal(t, tt.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.errMsg)
		})
	}

	rec := get(t, handler, "/findPath?start=BAG&end=ISO")
	assert.JSONEq(t, `{"error":"no path found"}`, rec.Body.String())
}

func TestFindPathSearchLimit(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{MaxSettledNodes: 1}), discard))

	rec := get(t, handler, "/findPath?start=BAG&end=CSE")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMapNotLoaded(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(nil, discard))

	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/buildings").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/findPath?start=A&end=B").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/healthz").Code)
}

func TestSwap(t *testing.T) {
	service := NewDefaultApiService(nil, discard)
	handler := newTestServer(t, service)
	service.Swap(testRouter(t, config.SearchConfig{}))

	rec := get(t, handler, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","nodes":4,"buildings":3}`, rec.Body.String())
}

func TestRequestIDIsKept(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	req := httptest.NewRequest(http.MethodGet, "/buildings", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	req := httptest.NewRequest(http.MethodGet, "/buildings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/findPath", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/findPath", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestServer(t, NewDefaultApiService(testRouter(t, config.SearchConfig{}), discard))

	req := httptest.NewRequest(http.MethodPost, "/buildings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
