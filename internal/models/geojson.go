package models

import (
	"encoding/json"
	"fmt"

	"smart-waste/internal/geo"
)

// GeoJSON wraps a geo.Point so it serializes as a GeoJSON Point geometry,
// longitude first. Write payloads carry separate lat/lng fields instead; the
// lng,lat ordering here is internal and must never be flipped.
type GeoJSON struct {
	geo.Point
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func (g GeoJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{
		Type:        "Point",
		Coordinates: [2]float64{g.Lon, g.Lat},
	})
}

func (g *GeoJSON) UnmarshalJSON(data []byte) error {
	var p geoJSONPoint
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Type != "Point" {
		return fmt.Errorf("geojson: unsupported geometry type %q", p.Type)
	}
	g.Lon = p.Coordinates[0]
	g.Lat = p.Coordinates[1]
	return nil
}
