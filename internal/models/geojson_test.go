package models

import (
	"encoding/json"
	"testing"

	"smart-waste/internal/geo"
)

func TestGeoJSONMarshalLonFirst(t *testing.T) {
	g := GeoJSON{Point: geo.Point{Lon: 90.4125, Lat: 23.8103}}
	out, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"Point","coordinates":[90.4125,23.8103]}`
	if string(out) != want {
		t.Fatalf("marshal = %s, want %s", out, want)
	}
}

func TestGeoJSONRoundTrip(t *testing.T) {
	var g GeoJSON
	if err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[-0.1278,51.5074]}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Lon != -0.1278 || g.Lat != 51.5074 {
		t.Fatalf("got lon=%v lat=%v", g.Lon, g.Lat)
	}
}

func TestGeoJSONRejectsNonPoint(t *testing.T) {
	var g GeoJSON
	err := json.Unmarshal([]byte(`{"type":"Polygon","coordinates":[0,0]}`), &g)
	if err == nil {
		t.Fatal("accepted non-Point geometry")
	}
}
