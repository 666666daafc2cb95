package entities

import (
	"math"

	"github.com/paulmach/orb"
)

// Location represents a geographic coordinate pair (latitude/longitude) in
// decimal degrees.
//
// Go Learning Note — Value Types vs Reference Types:
// Location is a small, immutable data holder. NewLocation returns it by value
// (not a pointer), which is idiomatic for small structs. Value types are copied
// on assignment, which is fine here since Location is only 16 bytes (two float64s).
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// NewLocation creates a Location value from latitude and longitude.
func NewLocation(lat, lng float64) Location {
	return Location{
		Latitude:  lat,
		Longitude: lng,
	}
}

// LocationFromPoint converts an orb.Point ([lng, lat]) into a Location.
func LocationFromPoint(p orb.Point) Location {
	return Location{
		Latitude:  p.Lat(),
		Longitude: p.Lon(),
	}
}

// Point returns the location as an orb.Point. orb stores points as
// [longitude, latitude], the GeoJSON axis order.
func (l Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// IsUnknown reports whether the location is the (0, 0) placeholder a device
// reports before it has a position fix.
func (l Location) IsUnknown() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// IsValid reports whether the location can be used for distance math: both
// components finite, inside the WGS84 ranges and not the unknown placeholder.
func (l Location) IsValid() bool {
	if !isFinite(l.Latitude) || !isFinite(l.Longitude) {
		return false
	}
	if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
		return false
	}
	return !l.IsUnknown()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
