package domain

import "math"

// Immutable WGS-84 coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Report whether both components are finite and inside the WGS-84 ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
