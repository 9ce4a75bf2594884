// Package provider wraps the external routing service and its cache.
package provider

import (
	"context"

	"github.com/bataanroutes/route-backend-go/internal/models"
)

// RouteProvider returns a drivable path between two coordinates.
// Implementations fail with models.ErrProviderUnavailable when the
// upstream service cannot serve the request and with
// models.ErrInvalidRouteRequest for out-of-bounds or identical endpoints.
type RouteProvider interface {
	GetRoute(ctx context.Context, start, end models.Coordinate) (models.RoutePolyline, error)
}
