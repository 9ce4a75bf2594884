package models

// RoutePolyline is the path returned by the routing provider, ordered
// start to end, with the provider's distance and travel time estimates
type RoutePolyline struct {
	Points          []Coordinate
	DistanceKm      float64
	DurationMinutes float64
}

// Geometry returns the path as [lng, lat] pairs (GeoJSON axis order)
func (p RoutePolyline) Geometry() [][]float64 {
	coords := make([][]float64, len(p.Points))
	for i, pt := range p.Points {
		coords[i] = []float64{pt.Lng, pt.Lat}
	}
	return coords
}

// RouteResult combines a computed route with its risk assessment.
// Created fresh per request and never persisted.
type RouteResult struct {
	RouteID    string
	Polyline   RoutePolyline
	Assessment RiskAssessment
}

// OptimizeRouteRequest is the POST /optimize-route body
type OptimizeRouteRequest struct {
	Start *Coordinate `json:"start" binding:"required"`
	End   *Coordinate `json:"end" binding:"required"`
}

// OptimizeRouteResponse is the wire form of a RouteResult
type OptimizeRouteResponse struct {
	RouteID              string      `json:"route_id"`
	Geometry             [][]float64 `json:"geometry"`
	RiskScore            float64     `json:"risk_score"`
	RiskTier             string      `json:"risk_tier"`
	FloodIntersections   int         `json:"flood_intersections"`
	DistanceKm           float64     `json:"distance_km"`
	EstimatedTimeMinutes int         `json:"estimated_time_minutes"`
	Warnings             []string    `json:"warnings"`
	AlternativeAvailable bool        `json:"alternative_available"`
}
