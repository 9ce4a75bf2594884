package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bataanroutes/route-backend-go/internal/floodzone"
	"github.com/bataanroutes/route-backend-go/internal/models"
	"github.com/bataanroutes/route-backend-go/internal/observability"
)

var (
	bataanStart = models.Coordinate{Lat: 14.4167, Lng: 120.4833}
	bataanEnd   = models.Coordinate{Lat: 14.6000, Lng: 120.4333}
)

// stubProvider returns a fixed straight-line route and counts calls
type stubProvider struct {
	calls int32
	route models.RoutePolyline
	err   error
}

func (p *stubProvider) GetRoute(ctx context.Context, start, end models.Coordinate) (models.RoutePolyline, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return models.RoutePolyline{}, p.err
	}
	return p.route, nil
}

func straightLine(start, end models.Coordinate) models.RoutePolyline {
	mid := models.Coordinate{
		Lat: (start.Lat + end.Lat) / 2,
		Lng: (start.Lng + end.Lng) / 2,
	}
	return models.RoutePolyline{
		Points:          []models.Coordinate{start, mid, end},
		DistanceKm:      24.5,
		DurationMinutes: 33.0,
	}
}

func midpointZone() models.FloodZone {
	return models.FloodZone{
		ID: "midpoint",
		Rings: [][]models.Coordinate{{
			{Lat: 14.50, Lng: 120.44},
			{Lat: 14.50, Lng: 120.47},
			{Lat: 14.52, Lng: 120.47},
			{Lat: 14.52, Lng: 120.44},
			{Lat: 14.50, Lng: 120.44},
		}},
	}
}

func newService(p *stubProvider, zones ...models.FloodZone) *RouteService {
	return NewRouteService(p, floodzone.NewStore(zones), observability.NewMetrics(prometheus.NewRegistry()))
}

func TestOptimizeRoundTrip(t *testing.T) {
	stub := &stubProvider{route: straightLine(bataanStart, bataanEnd)}
	svc := newService(stub, midpointZone())

	result, err := svc.Optimize(context.Background(), bataanStart, bataanEnd)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	if result.RouteID == "" {
		t.Fatal("RouteID is empty")
	}
	if result.Assessment.IntersectionCount != 1 {
		t.Fatalf("IntersectionCount = %d; want 1", result.Assessment.IntersectionCount)
	}
	if result.Assessment.RiskTier != models.RiskTierLow {
		t.Fatalf("RiskTier = %v; want low for a single intersection", result.Assessment.RiskTier)
	}
	if len(result.Assessment.Warnings) < 1 {
		t.Fatal("want at least one warning")
	}
	if result.Polyline.DistanceKm != 24.5 {
		t.Fatalf("DistanceKm = %v; want 24.5", result.Polyline.DistanceKm)
	}

	second, err := svc.Optimize(context.Background(), bataanStart, bataanEnd)
	if err != nil {
		t.Fatalf("second Optimize: %v", err)
	}
	if second.RouteID == result.RouteID {
		t.Fatal("route ids must be unique per request")
	}
}

func TestOptimizeValidatesBeforeProviderCall(t *testing.T) {
	cases := []struct {
		name       string
		start, end models.Coordinate
	}{
		{"latitude 200", models.Coordinate{Lat: 200, Lng: 120.48}, bataanEnd},
		{"longitude 181", bataanStart, models.Coordinate{Lat: 14.6, Lng: 181}},
		{"identical endpoints", bataanStart, bataanStart},
		{
			"nearly identical endpoints",
			bataanStart,
			models.Coordinate{Lat: bataanStart.Lat + 0.00001, Lng: bataanStart.Lng},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubProvider{route: straightLine(bataanStart, bataanEnd)}
			svc := newService(stub)

			_, err := svc.Optimize(context.Background(), tc.start, tc.end)
			if !errors.Is(err, models.ErrInvalidRouteRequest) {
				t.Fatalf("error = %v; want ErrInvalidRouteRequest", err)
			}
			if atomic.LoadInt32(&stub.calls) != 0 {
				t.Fatalf("provider calls = %d; want 0", stub.calls)
			}
		})
	}
}

func TestOptimizePropagatesProviderError(t *testing.T) {
	stub := &stubProvider{err: models.ErrProviderUnavailable}
	svc := newService(stub)

	_, err := svc.Optimize(context.Background(), bataanStart, bataanEnd)
	if !errors.Is(err, models.ErrProviderUnavailable) {
		t.Fatalf("error = %v; want ErrProviderUnavailable", err)
	}
}

func TestOptimizePropagatesGeometryError(t *testing.T) {
	stub := &stubProvider{route: models.RoutePolyline{
		Points:          []models.Coordinate{bataanStart},
		DistanceKm:      1,
		DurationMinutes: 1,
	}}
	svc := newService(stub)

	_, err := svc.Optimize(context.Background(), bataanStart, bataanEnd)
	if !errors.Is(err, models.ErrInvalidGeometry) {
		t.Fatalf("error = %v; want ErrInvalidGeometry", err)
	}
}

func TestOptimizeCleanRouteHasNoWarnings(t *testing.T) {
	stub := &stubProvider{route: straightLine(bataanStart, bataanEnd)}
	svc := newService(stub, models.FloodZone{
		ID: "far-north",
		Rings: [][]models.Coordinate{{
			{Lat: 15.2, Lng: 120.6},
			{Lat: 15.2, Lng: 120.7},
			{Lat: 15.3, Lng: 120.7},
			{Lat: 15.2, Lng: 120.6},
		}},
	})

	result, err := svc.Optimize(context.Background(), bataanStart, bataanEnd)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if result.Assessment.IntersectionCount != 0 || result.Assessment.RiskScore != 0 {
		t.Fatalf("assessment = %+v; want zero count and score", result.Assessment)
	}
	if len(result.Assessment.Warnings) != 0 {
		t.Fatalf("Warnings = %v; want none", result.Assessment.Warnings)
	}
}
