// Package geo holds small geographic helpers shared by the console.
package geo

import (
	"math"
	"strings"
)

const earthRadiusMeters = 6371000

// SameLocationToleranceMeters is the distance under which two coordinate
// pairs are treated as the same physical place.
const SameLocationToleranceMeters = 50

// Point is a longitude/latitude pair with an optional display label.
type Point struct {
	Label  string
	Lng    float64
	Lat    float64
	Coords bool // true when Lng/Lat are meaningful
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLng := toRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Equal reports whether two locations refer to the same place: by proximity
// when both carry coordinates, otherwise by case-insensitive label match.
func Equal(a, b Point) bool {
	if a.Coords && b.Coords {
		return HaversineMeters(a, b) <= SameLocationToleranceMeters
	}
	al := strings.ToLower(strings.TrimSpace(a.Label))
	bl := strings.ToLower(strings.TrimSpace(b.Label))
	return al != "" && al == bl
}
