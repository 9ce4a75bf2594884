package floodzone

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/bataanroutes/route-backend-go/internal/models"
)

// Store holds the static flood-prone polygons for the life of the process.
// Populated once by Load and read-only afterwards, so it is safe to share
// across concurrent requests without locking.
type Store struct {
	zones []models.FloodZone
}

// NewStore wraps an already-built zone set, mainly for tests
func NewStore(zones []models.FloodZone) *Store {
	return &Store{zones: zones}
}

// Load reads a GeoJSON FeatureCollection of flood-prone polygons.
// Fails with models.ErrDataLoad when the file is missing, malformed, or
// contains coordinates outside WGS84 bounds. Individual rings with fewer
// than 3 distinct points are skipped with a logged anomaly.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", models.ErrDataLoad, path, err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", models.ErrDataLoad, path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: %s: expected FeatureCollection, got %q", models.ErrDataLoad, path, fc.Type)
	}

	zones := make([]models.FloodZone, 0, len(fc.Features))
	for i, feat := range fc.Features {
		rings, err := feat.Geometry.outerRings()
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %v", models.ErrDataLoad, i, err)
		}

		zone := models.FloodZone{
			ID:   feat.propertyString("id", fmt.Sprintf("zone-%d", i)),
			Name: feat.propertyString("name", ""),
		}

		for j, ring := range rings {
			coords, err := toCoordinates(ring)
			if err != nil {
				return nil, fmt.Errorf("%w: feature %d ring %d: %v", models.ErrDataLoad, i, j, err)
			}
			if len(coords) < 3 {
				log.Printf("floodzone: skipping degenerate ring %d of feature %d (%d points)", j, i, len(coords))
				continue
			}
			zone.Rings = append(zone.Rings, coords)
		}

		if len(zone.Rings) == 0 {
			log.Printf("floodzone: skipping feature %d (%s): no usable rings", i, zone.ID)
			continue
		}
		zones = append(zones, zone)
	}

	return &Store{zones: zones}, nil
}

// Zones returns the loaded flood zones as a read-only view
func (s *Store) Zones() []models.FloodZone {
	return s.zones
}

// Count returns the number of loaded zones
func (s *Store) Count() int {
	return len(s.zones)
}

// FeatureCollection re-serializes the loaded zones as GeoJSON for clients
// rendering the flood overlay
func (s *Store) FeatureCollection() map[string]interface{} {
	features := make([]map[string]interface{}, 0, len(s.zones))
	for _, zone := range s.zones {
		coords := make([][][][]float64, 0, len(zone.Rings))
		for _, ring := range zone.Rings {
			part := make([][]float64, 0, len(ring))
			for _, c := range ring {
				part = append(part, []float64{c.Lng, c.Lat})
			}
			coords = append(coords, [][][]float64{part})
		}
		features = append(features, map[string]interface{}{
			"type": "Feature",
			"properties": map[string]interface{}{
				"id":   zone.ID,
				"name": zone.Name,
			},
			"geometry": map[string]interface{}{
				"type":        "MultiPolygon",
				"coordinates": coords,
			},
		})
	}
	return map[string]interface{}{
		"type":     "FeatureCollection",
		"features": features,
	}
}

func toCoordinates(ring [][]float64) ([]models.Coordinate, error) {
	coords := make([]models.Coordinate, 0, len(ring))
	for _, pos := range ring {
		if len(pos) < 2 {
			return nil, fmt.Errorf("position has %d values, want at least 2", len(pos))
		}
		// GeoJSON positions are [lng, lat]
		c := models.Coordinate{Lat: pos[1], Lng: pos[0]}
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			return nil, fmt.Errorf("coordinate (%f, %f) outside WGS84 bounds", c.Lat, c.Lng)
		}
		coords = append(coords, c)
	}
	return coords, nil
}
