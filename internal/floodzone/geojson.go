package floodzone

import (
	"encoding/json"
	"fmt"
)

// featureCollection mirrors the GeoJSON FeatureCollection structure
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// feature is a single GeoJSON feature with free-form properties
type feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   geometry               `json:"geometry"`
}

// geometry defers coordinate decoding until the type is known,
// since Polygon and MultiPolygon nest differently
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// outerRings extracts the outer ring of each polygon part.
// Interior rings (holes) are dropped.
func (g geometry) outerRings() ([][][]float64, error) {
	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("decoding Polygon coordinates: %v", err)
		}
		if len(rings) == 0 {
			return nil, nil
		}
		return rings[:1], nil

	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("decoding MultiPolygon coordinates: %v", err)
		}
		var outers [][][]float64
		for _, poly := range polys {
			if len(poly) > 0 {
				outers = append(outers, poly[0])
			}
		}
		return outers, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func (f feature) propertyString(key, fallback string) string {
	if v, ok := f.Properties[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
