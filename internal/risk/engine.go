// Package risk scores a route polyline against a set of flood-prone
// polygons. Assess is a pure function: no I/O beyond an anomaly log line,
// deterministic for identical inputs.
package risk

import (
	"fmt"
	"log"

	"github.com/bataanroutes/route-backend-go/internal/models"
	"github.com/bataanroutes/route-backend-go/internal/spatial"
)

// Scoring curve: capped linear with a knee. The first few intersected
// zones dominate the score, later ones add little, and the score
// saturates at MaxScore. Monotonic non-decreasing in the count.
const (
	MaxScore = 10.0

	kneeCount        = 3
	primaryIncrement = 2.5
	tailIncrement    = 0.5
)

// Tier boundaries. A score exactly on a boundary belongs to the
// lower-risk tier: 3.0 is low, 6.0 is medium.
const (
	lowTierMax    = 3.0
	mediumTierMax = 6.0
)

// Assess counts the flood zones the route crosses and derives a bounded
// risk score, a tier, and warnings. Routes with fewer than 2 points fail
// with models.ErrInvalidGeometry. Zones whose rings are all degenerate
// contribute nothing and are logged, never fatal.
func Assess(route models.RoutePolyline, zones []models.FloodZone) (models.RiskAssessment, error) {
	if len(route.Points) < 2 {
		return models.RiskAssessment{}, fmt.Errorf("%w: route has %d points, need at least 2", models.ErrInvalidGeometry, len(route.Points))
	}

	line := toSpatial(route.Points)

	count := 0
	for _, zone := range zones {
		if zoneIntersects(line, zone) {
			count++
		}
	}

	score := ScoreForCount(count)
	tier := TierForScore(score)

	return models.RiskAssessment{
		IntersectionCount:    count,
		RiskScore:            score,
		RiskTier:             tier,
		Warnings:             warningsFor(count, tier),
		AlternativeAvailable: false, // no alternate-route search implemented
	}, nil
}

// ScoreForCount maps a distinct-zone intersection count to [0, MaxScore]
func ScoreForCount(count int) float64 {
	if count <= 0 {
		return 0
	}

	var score float64
	if count <= kneeCount {
		score = float64(count) * primaryIncrement
	} else {
		score = kneeCount*primaryIncrement + float64(count-kneeCount)*tailIncrement
	}

	if score > MaxScore {
		return MaxScore
	}
	return score
}

// TierForScore buckets a score into low/medium/high
func TierForScore(score float64) models.RiskTier {
	switch {
	case score <= lowTierMax:
		return models.RiskTierLow
	case score <= mediumTierMax:
		return models.RiskTierMedium
	default:
		return models.RiskTierHigh
	}
}

func warningsFor(count int, tier models.RiskTier) []string {
	if count == 0 {
		return []string{}
	}

	noun := "areas"
	if count == 1 {
		noun = "area"
	}
	warnings := []string{
		fmt.Sprintf("Route passes through %d flood-prone %s (%s risk)", count, noun, tier),
	}
	if tier == models.RiskTierHigh {
		warnings = append(warnings, "High flood risk along this route, avoid travel during or after heavy rainfall")
	}
	return warnings
}

func zoneIntersects(line []spatial.Point, zone models.FloodZone) bool {
	hasUsableRing := false
	for _, ring := range zone.Rings {
		if len(ring) < 3 {
			continue
		}
		hasUsableRing = true
		if spatial.PolylineIntersectsRing(line, toSpatial(ring)) {
			return true
		}
	}
	if !hasUsableRing {
		log.Printf("risk: zone %s has no usable rings, skipping", zone.ID)
	}
	return false
}

func toSpatial(coords []models.Coordinate) []spatial.Point {
	points := make([]spatial.Point, len(coords))
	for i, c := range coords {
		points[i] = spatial.Point{Lat: c.Lat, Lon: c.Lng}
	}
	return points
}
