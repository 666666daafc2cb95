// Package geo implements geohash encoding, used to bucket rider positions
// into cells for caching reverse-geocoding results.
//
// Go Learning Note — What is a Geohash?
// A geohash encodes a latitude/longitude pair into a short string. Nearby
// locations share a common prefix, so a fixed-length hash names a cell on the
// map. Everyone standing in the same cell gets the same key.
//
// Precision determines the cell size:
//
//	1 → ~5000 km    4 → ~39 km     7 → ~153 m    10 → ~1.2 m
//	2 → ~1250 km    5 → ~5 km      8 → ~19 m     11 → ~15 cm
//	3 → ~156 km     6 → ~1.2 km    9 → ~2.4 m    12 → ~1.9 cm
//
// Address labels only change between districts, so DefaultPrecision (7) is
// far finer than needed and keeps the cache hit rate high along a street.
package geo

import (
	"strings"

	"ridehail/internal/domain/entities"
)

// base32 is the geohash character set. 'a', 'i', 'l' and 'o' are excluded to
// avoid confusion with digits.
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

const (
	DefaultPrecision = 7
	MaxPrecision     = 12
)

var base32Index [256]int8

func init() {
	for i := range base32Index {
		base32Index[i] = -1
	}
	for i := 0; i < len(base32); i++ {
		base32Index[base32[i]] = int8(i)
	}
}

// Encode converts latitude and longitude to a geohash string. Precision is
// clamped to [1, MaxPrecision]; zero or negative selects DefaultPrecision.
//
// Algorithm overview (binary interleaving):
//  1. Start with the full range: lat [-90, 90], lon [-180, 180]
//  2. Alternate between longitude (even bits) and latitude (odd bits)
//  3. For each step, bisect the range and set bit=1 if value >= midpoint
//  4. Every 5 bits are encoded as one base32 character
func Encode(lat, lon float64, precision int) string {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}

	latRange := [2]float64{-90, 90}
	lonRange := [2]float64{-180, 180}

	var hash strings.Builder
	hash.Grow(precision)
	lonBit := true
	bit, ch := 0, 0

	for hash.Len() < precision {
		if lonBit {
			ch = bisect(lon, &lonRange, ch, bit)
		} else {
			ch = bisect(lat, &latRange, ch, bit)
		}
		lonBit = !lonBit
		bit++
		if bit == 5 {
			hash.WriteByte(base32[ch])
			bit, ch = 0, 0
		}
	}

	return hash.String()
}

func bisect(v float64, r *[2]float64, ch, bit int) int {
	mid := (r[0] + r[1]) / 2
	if v >= mid {
		r[0] = mid
		return ch | 1<<(4-bit)
	}
	r[1] = mid
	return ch
}

// Decode returns the center of the cell named by hash. ok is false when hash
// is empty or contains a character outside the geohash alphabet.
func Decode(hash string) (lat, lon float64, ok bool) {
	if hash == "" {
		return 0, 0, false
	}

	latRange := [2]float64{-90, 90}
	lonRange := [2]float64{-180, 180}
	lonBit := true

	for i := 0; i < len(hash); i++ {
		cd := base32Index[hash[i]]
		if cd < 0 {
			return 0, 0, false
		}
		for j := 4; j >= 0; j-- {
			r := &latRange
			if lonBit {
				r = &lonRange
			}
			mid := (r[0] + r[1]) / 2
			if (cd>>j)&1 == 1 {
				r[0] = mid
			} else {
				r[1] = mid
			}
			lonBit = !lonBit
		}
	}

	return (latRange[0] + latRange[1]) / 2, (lonRange[0] + lonRange[1]) / 2, true
}

// Cell returns the geohash of loc at the given precision.
func Cell(loc entities.Location, precision int) string {
	return Encode(loc.Latitude, loc.Longitude, precision)
}

// CellCenter returns the center of the cell as a Location.
func CellCenter(hash string) (entities.Location, bool) {
	lat, lon, ok := Decode(hash)
	return entities.NewLocation(lat, lon), ok
}
