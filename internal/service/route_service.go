package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bataanroutes/route-backend-go/internal/floodzone"
	"github.com/bataanroutes/route-backend-go/internal/models"
	"github.com/bataanroutes/route-backend-go/internal/observability"
	"github.com/bataanroutes/route-backend-go/internal/provider"
	"github.com/bataanroutes/route-backend-go/internal/risk"
	"github.com/bataanroutes/route-backend-go/internal/spatial"
)

// minEndpointSeparationMeters rejects start/end pairs closer than the cache
// key resolution; ORS cannot route between coincident points anyway
const minEndpointSeparationMeters = 10.0

// RouteService orchestrates a route request: validate, fetch the route
// from the provider, score it against the flood zones, assemble the result
type RouteService struct {
	provider provider.RouteProvider
	zones    *floodzone.Store
	metrics  *observability.Metrics
}

// NewRouteService creates a new route service
func NewRouteService(p provider.RouteProvider, zones *floodzone.Store, metrics *observability.Metrics) *RouteService {
	return &RouteService{provider: p, zones: zones, metrics: metrics}
}

// Optimize computes a flood-risk-assessed route between start and end.
// Input validation happens here, before any provider call; provider and
// geometry errors propagate unmodified.
func (s *RouteService) Optimize(ctx context.Context, start, end models.Coordinate) (*models.RouteResult, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}
	if spatial.HaversineDistance(start.Lat, start.Lng, end.Lat, end.Lng) < minEndpointSeparationMeters {
		return nil, fmt.Errorf("%w: start and end are identical or nearly identical", models.ErrInvalidRouteRequest)
	}

	route, err := s.provider.GetRoute(ctx, start, end)
	if err != nil {
		return nil, err
	}

	assessment, err := risk.Assess(route, s.zones.Zones())
	if err != nil {
		return nil, err
	}
	s.metrics.Assessments.WithLabelValues(string(assessment.RiskTier)).Inc()

	return &models.RouteResult{
		RouteID:    uuid.NewString(),
		Polyline:   route,
		Assessment: assessment,
	}, nil
}
