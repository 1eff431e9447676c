// Package geo holds the spherical and planar primitives used to decide
// whether a delivery destination falls inside a zone.
package geo

import (
	"delivery-zone-service/internal/domain"
	"math"
)

// Mean Earth radius used for all great-circle distances.
const EarthRadiusKm = 6371.0

// DistanceKm returns the Haversine great-circle distance between a and b.
func DistanceKm(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// Rounding can push h just past 1 for near-antipodal points.
	h = math.Min(math.Max(h, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// PointInCircle reports whether p lies within radiusKm of center (inclusive).
func PointInCircle(p, center domain.Coordinates, radiusKm float64) bool {
	return DistanceKm(p, center) <= radiusKm
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
