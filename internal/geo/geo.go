// Package geo provides the geospatial primitives shared by the coverage
// and suggestion logic: WGS84 points, great-circle distance, and centroid
// aggregation.
package geo

import (
	"errors"
	"math"
)

// earthRadiusMeters is the IUGG mean earth radius.
const earthRadiusMeters = 6371008.8

// ErrNoPoints is returned by Centroid when given an empty slice.
var ErrNoPoints = errors.New("geo: centroid of zero points")

// Point is a geographic coordinate pair, longitude first (WGS84).
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Distance returns the great-circle (haversine) distance between a and b
// in meters. Every spatial predicate in the service goes through this one
// function, so engine-side and filter-side distance semantics cannot drift
// apart.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Centroid returns the coordinate-wise arithmetic mean of pts.
//
// This is a planar average of raw degrees, not a geodesic centroid: it is
// fine for the small local clusters it is used on, and wrong near the poles
// or across the antimeridian. Kept deliberately, since bin placement
// downstream depends on this exact behavior.
func Centroid(pts []Point) (Point, error) {
	if len(pts) == 0 {
		return Point{}, ErrNoPoints
	}
	var sumLon, sumLat float64
	for _, p := range pts {
		sumLon += p.Lon
		sumLat += p.Lat
	}
	n := float64(len(pts))
	return Point{Lon: sumLon / n, Lat: sumLat / n}, nil
}
