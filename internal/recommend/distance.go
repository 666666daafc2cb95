// Package recommend ranks catalog destinations for a rider: great-circle
// distance, travel-time and fare estimates, and the two selection policies
// (time window and category grouping).
//
// Everything in this package is pure. Functions take values, return values and
// touch no shared state, so they are safe to call from any number of
// goroutines.
package recommend

import (
	"math"

	"ridehail/internal/domain/entities"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine calculates the great-circle distance between two points in
// kilometers.
//
// Go Learning Note — math Package:
// Go's math package provides trigonometric functions that work in radians.
// We convert degrees to radians by multiplying by π/180. The Haversine
// formula accounts for Earth's curvature, which matters once trips span
// more than a few kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	// Rounding can push a a hair above 1 for antipodal points.
	a = math.Min(a, 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Distance is Haversine over two Locations.
func Distance(from, to entities.Location) float64 {
	return Haversine(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}
