package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}

// BoundingBoxesOverlap reports whether two bounding boxes share any area
func BoundingBoxesOverlap(aMinLat, aMinLon, aMaxLat, aMaxLon, bMinLat, bMinLon, bMaxLat, bMaxLon float64) bool {
	return aMinLat <= bMaxLat && bMinLat <= aMaxLat &&
		aMinLon <= bMaxLon && bMinLon <= aMaxLon
}

// PointInPolygon checks if a point is inside a polygon using ray casting
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lon < (polygon[j].Lon-polygon[i].Lon)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// SegmentsIntersect checks if segment p1-p2 intersects segment q1-q2,
// including collinear overlap and shared endpoints
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear special cases
	if o1 == 0 && onSegment(p1, q1, p2) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, p2) {
		return true
	}
	if o3 == 0 && onSegment(q1, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(q1, p2, q2) {
		return true
	}

	return false
}

// PolylineIntersectsRing checks whether an open polyline crosses or enters
// a closed polygon ring. The test is planar in degree space; for the small
// extents handled here the projection error is negligible.
func PolylineIntersectsRing(line []Point, ring []Point) bool {
	if len(line) < 2 || len(ring) < 3 {
		return false
	}

	// Cheap reject on bounding boxes before any edge work
	lMinLat, lMinLon, lMaxLat, lMaxLon := BoundingBox(line)
	rMinLat, rMinLon, rMaxLat, rMaxLon := BoundingBox(ring)
	if !BoundingBoxesOverlap(lMinLat, lMinLon, lMaxLat, lMaxLon, rMinLat, rMinLon, rMaxLat, rMaxLon) {
		return false
	}

	// A vertex inside the ring means containment even without an edge crossing
	for _, p := range line {
		if PointInPolygon(p, ring) {
			return true
		}
	}

	// Edge-vs-edge crossings
	for i := 1; i < len(line); i++ {
		j := len(ring) - 1
		for k := 0; k < len(ring); k++ {
			if SegmentsIntersect(line[i-1], line[i], ring[j], ring[k]) {
				return true
			}
			j = k
		}
	}

	return false
}

// orientation returns the turn direction of the triplet (p, q, r):
// 0 collinear, 1 counter-clockwise, -1 clockwise
func orientation(p, q, r Point) int {
	v := (q.Lon-p.Lon)*(r.Lat-p.Lat) - (q.Lat-p.Lat)*(r.Lon-p.Lon)
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// onSegment checks if point q, known to be collinear with p-r, lies on p-r
func onSegment(p, q, r Point) bool {
	return math.Min(p.Lon, r.Lon) <= q.Lon && q.Lon <= math.Max(p.Lon, r.Lon) &&
		math.Min(p.Lat, r.Lat) <= q.Lat && q.Lat <= math.Max(p.Lat, r.Lat)
}
