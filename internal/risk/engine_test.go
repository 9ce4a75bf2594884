package risk

import (
	"errors"
	"strings"
	"testing"

	"github.com/bataanroutes/route-backend-go/internal/models"
)

func squareZone(id string, minLat, minLng, maxLat, maxLng float64) models.FloodZone {
	return models.FloodZone{
		ID: id,
		Rings: [][]models.Coordinate{{
			{Lat: minLat, Lng: minLng},
			{Lat: minLat, Lng: maxLng},
			{Lat: maxLat, Lng: maxLng},
			{Lat: maxLat, Lng: minLng},
			{Lat: minLat, Lng: minLng},
		}},
	}
}

func straightRoute(points ...models.Coordinate) models.RoutePolyline {
	return models.RoutePolyline{Points: points, DistanceKm: 10, DurationMinutes: 15}
}

func TestAssessNoIntersections(t *testing.T) {
	route := straightRoute(
		models.Coordinate{Lat: 14.40, Lng: 120.48},
		models.Coordinate{Lat: 14.60, Lng: 120.43},
	)
	zones := []models.FloodZone{squareZone("far", 15.0, 121.0, 15.1, 121.1)}

	got, err := Assess(route, zones)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got.IntersectionCount != 0 {
		t.Fatalf("IntersectionCount = %d; want 0", got.IntersectionCount)
	}
	if got.RiskScore != 0 {
		t.Fatalf("RiskScore = %v; want 0", got.RiskScore)
	}
	if got.RiskTier != models.RiskTierLow {
		t.Fatalf("RiskTier = %v; want low", got.RiskTier)
	}
	if len(got.Warnings) != 0 {
		t.Fatalf("Warnings = %v; want empty", got.Warnings)
	}
	if got.AlternativeAvailable {
		t.Fatal("AlternativeAvailable = true; want false")
	}
}

func TestAssessBataanRoundTrip(t *testing.T) {
	// Straight path from Mariveles side to Balanga side with a single
	// zone straddling the midpoint of the route.
	route := straightRoute(
		models.Coordinate{Lat: 14.4167, Lng: 120.4833},
		models.Coordinate{Lat: 14.5083, Lng: 120.4583},
		models.Coordinate{Lat: 14.6000, Lng: 120.4333},
	)
	zones := []models.FloodZone{squareZone("midpoint", 14.50, 120.44, 14.52, 120.47)}

	got, err := Assess(route, zones)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got.IntersectionCount != 1 {
		t.Fatalf("IntersectionCount = %d; want 1", got.IntersectionCount)
	}
	if got.RiskScore != 2.5 {
		t.Fatalf("RiskScore = %v; want 2.5", got.RiskScore)
	}
	if got.RiskTier != models.RiskTierLow {
		t.Fatalf("RiskTier = %v; want low", got.RiskTier)
	}
	if len(got.Warnings) < 1 {
		t.Fatal("want at least one warning")
	}
	if !strings.Contains(got.Warnings[0], "1 flood-prone area") {
		t.Fatalf("warning %q does not state the count", got.Warnings[0])
	}
}

func TestAssessCountsDistinctZones(t *testing.T) {
	// Route crossing two zones, with a third zone off to the side
	route := straightRoute(
		models.Coordinate{Lat: 14.40, Lng: 120.40},
		models.Coordinate{Lat: 14.40, Lng: 120.60},
	)
	zones := []models.FloodZone{
		squareZone("a", 14.39, 120.42, 14.41, 120.44),
		squareZone("b", 14.39, 120.50, 14.41, 120.52),
		squareZone("c", 14.70, 120.50, 14.72, 120.52),
	}

	got, err := Assess(route, zones)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got.IntersectionCount != 2 {
		t.Fatalf("IntersectionCount = %d; want 2", got.IntersectionCount)
	}
	if got.RiskScore != 5.0 {
		t.Fatalf("RiskScore = %v; want 5.0", got.RiskScore)
	}
	if got.RiskTier != models.RiskTierMedium {
		t.Fatalf("RiskTier = %v; want medium", got.RiskTier)
	}
}

func TestAssessRouteFullyInsideZone(t *testing.T) {
	route := straightRoute(
		models.Coordinate{Lat: 14.50, Lng: 120.45},
		models.Coordinate{Lat: 14.51, Lng: 120.46},
	)
	zones := []models.FloodZone{squareZone("big", 14.0, 120.0, 15.0, 121.0)}

	got, err := Assess(route, zones)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got.IntersectionCount != 1 {
		t.Fatalf("IntersectionCount = %d; want 1 (containment counts)", got.IntersectionCount)
	}
}

func TestAssessSinglePointRoute(t *testing.T) {
	route := models.RoutePolyline{Points: []models.Coordinate{{Lat: 14.5, Lng: 120.5}}}

	_, err := Assess(route, nil)
	if !errors.Is(err, models.ErrInvalidGeometry) {
		t.Fatalf("Assess error = %v; want ErrInvalidGeometry", err)
	}
}

func TestAssessSkipsDegenerateZone(t *testing.T) {
	route := straightRoute(
		models.Coordinate{Lat: 14.40, Lng: 120.40},
		models.Coordinate{Lat: 14.40, Lng: 120.60},
	)
	zones := []models.FloodZone{
		{ID: "broken", Rings: [][]models.Coordinate{{{Lat: 14.40, Lng: 120.45}, {Lat: 14.40, Lng: 120.46}}}},
		squareZone("a", 14.39, 120.50, 14.41, 120.52),
	}

	got, err := Assess(route, zones)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got.IntersectionCount != 1 {
		t.Fatalf("IntersectionCount = %d; want 1 (degenerate zone skipped)", got.IntersectionCount)
	}
}

func TestScoreForCountMonotoneAndBounded(t *testing.T) {
	prev := -1.0
	for count := 0; count <= 40; count++ {
		score := ScoreForCount(count)
		if score < 0 || score > MaxScore {
			t.Fatalf("ScoreForCount(%d) = %v; out of [0, 10]", count, score)
		}
		if score < prev {
			t.Fatalf("ScoreForCount(%d) = %v < previous %v; not monotone", count, score, prev)
		}
		prev = score
	}

	if ScoreForCount(-3) != 0 {
		t.Fatal("negative count must score 0")
	}
	if ScoreForCount(100) != MaxScore {
		t.Fatalf("ScoreForCount(100) = %v; want saturation at %v", ScoreForCount(100), MaxScore)
	}
}

func TestScoreForCountKnee(t *testing.T) {
	cases := []struct {
		count int
		want  float64
	}{
		{0, 0},
		{1, 2.5},
		{2, 5.0},
		{3, 7.5},
		{4, 8.0},
		{5, 8.5},
		{8, 10.0},
		{20, 10.0},
	}

	for _, tc := range cases {
		if got := ScoreForCount(tc.count); got != tc.want {
			t.Fatalf("ScoreForCount(%d) = %v; want %v", tc.count, got, tc.want)
		}
	}
}

func TestTierForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.RiskTier
	}{
		{0, models.RiskTierLow},
		{2.5, models.RiskTierLow},
		{3.0, models.RiskTierLow}, // boundary belongs to the lower-risk tier
		{3.01, models.RiskTierMedium},
		{5.0, models.RiskTierMedium},
		{6.0, models.RiskTierMedium}, // boundary belongs to the lower-risk tier
		{6.01, models.RiskTierHigh},
		{10.0, models.RiskTierHigh},
	}

	for _, tc := range cases {
		if got := TierForScore(tc.score); got != tc.want {
			t.Fatalf("TierForScore(%v) = %v; want %v", tc.score, got, tc.want)
		}
	}
}

func TestHighTierAddsSecondWarning(t *testing.T) {
	route := straightRoute(
		models.Coordinate{Lat: 14.40, Lng: 120.40},
		models.Coordinate{Lat: 14.40, Lng: 120.60},
	)
	zones := []models.FloodZone{
		squareZone("a", 14.39, 120.41, 14.41, 120.43),
		squareZone("b", 14.39, 120.45, 14.41, 120.47),
		squareZone("c", 14.39, 120.50, 14.41, 120.52),
	}

	got, err := Assess(route, zones)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got.RiskTier != models.RiskTierHigh {
		t.Fatalf("RiskTier = %v; want high", got.RiskTier)
	}
	if len(got.Warnings) != 2 {
		t.Fatalf("Warnings = %v; want count warning plus high-risk advisory", got.Warnings)
	}
}
