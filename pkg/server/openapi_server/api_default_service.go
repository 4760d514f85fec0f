package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/campus-paths/internal/metrics"
	"github.com/natevvv/campus-paths/pkg/graph/path"
	"github.com/natevvv/campus-paths/pkg/routing"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
//
// The router is replaced as a whole when the campus data is reloaded. Requests in flight
// finish on the router they started with.
type DefaultApiService struct {
	router atomic.Pointer[routing.Router]
	logger *slog.Logger
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router, logger *slog.Logger) *DefaultApiService {
	s := &DefaultApiService{logger: logger}
	if router != nil {
		s.Swap(router)
	}
	return s
}

// Swap publishes a new router.
func (s *DefaultApiService) Swap(router *routing.Router) {
	s.router.Store(router)
	metrics.GraphNodes.Set(float64(router.Map().Graph().NodeCount()))
	metrics.GraphArcs.Set(float64(router.Map().Graph().ArcCount()))
}

func (s *DefaultApiService) GetBuildings(ctx context.Context) (ImplResponse, error) {
	router := s.router.Load()
	if router == nil {
		return Response(http.StatusServiceUnavailable, nil), ErrMapNotLoaded
	}
	return Response(http.StatusOK, router.Buildings()), nil
}

func (s *DefaultApiService) FindPath(ctx context.Context, req FindPathRequest) (ImplResponse, error) {
	router := s.router.Load()
	if router == nil {
		return Response(http.StatusServiceUnavailable, nil), ErrMapNotLoaded
	}
	if req.Format != "" && req.Format != FormatJSON && req.Format != FormatGeoJSON {
		metrics.RouteRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		return Response(http.StatusBadRequest, nil), fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}

	route, err := router.ComputeRoute(req.Start, req.End)
	switch {
	case errors.Is(err, routing.ErrUnknownBuilding):
		metrics.RouteRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		return Response(http.StatusBadRequest, nil), err
	case errors.Is(err, path.ErrSearchLimit):
		metrics.RouteRequests.WithLabelValues(metrics.OutcomeSearchLimit).Inc()
		s.logger.Warn("route search stopped by limit", "start", req.Start, "end", req.End, "request_id", RequestID(ctx))
		return Response(http.StatusUnprocessableEntity, nil), err
	case err != nil:
		return Response(http.StatusInternalServerError, nil), err
	}

	if !route.Exists {
		metrics.RouteRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
		s.logger.Info("no path found", "start", req.Start, "end", req.End, "request_id", RequestID(ctx))
		return Response(http.StatusNotFound, ErrorResponse{Error: "no path found"}), nil
	}
	metrics.RouteRequests.WithLabelValues(metrics.OutcomeFound).Inc()

	if req.Format == FormatGeoJSON {
		return ImplResponse{Code: http.StatusOK, Body: routeFeature(route), ContentType: "application/geo+json"}, nil
	}
	return Response(http.StatusOK, routeModel(route)), nil
}

func (s *DefaultApiService) Healthz(ctx context.Context) (ImplResponse, error) {
	router := s.router.Load()
	if router == nil {
		return Response(http.StatusServiceUnavailable, nil), ErrMapNotLoaded
	}
	return Response(http.StatusOK, map[string]any{
		"status":    "ok",
		"nodes":     router.Map().Graph().NodeCount(),
		"buildings": len(router.Map().Buildings()),
	}), nil
}

func routeModel(route routing.Route) RouteResponse {
	segments := make([]Segment, 0, route.Path.Hops())
	for _, s := range route.Path.Segments() {
		segments = append(segments, Segment{Start: point(s.Start), End: point(s.End), Cost: s.Cost})
	}
	return RouteResponse{Start: point(route.Path.Start()), Cost: route.Path.Cost(), Path: segments}
}

func routeFeature(route routing.Route) *geojson.Feature {
	feature := geojson.NewFeature(orb.LineString(route.Path.Waypoints()))
	feature.Properties["start"] = route.Origin.ShortName
	feature.Properties["end"] = route.Destination.ShortName
	feature.Properties["cost"] = route.Path.Cost()
	return feature
}

func point(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}
