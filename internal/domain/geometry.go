package domain

import "math"

// Geometry is the region a delivery zone covers.
// The set of implementations is closed: Circle and Polygon.
type Geometry interface {
	// Validate reports an *InvalidGeometryError when the shape cannot be evaluated.
	Validate() error
	isGeometry()
}

// Circle covers every point within RadiusKm great-circle kilometres of Center.
type Circle struct {
	Center   Coordinates
	RadiusKm float64
}

// Polygon covers the area enclosed by Points, an ordered ring without a closing vertex.
type Polygon struct {
	Points []Coordinates
}

func (Circle) isGeometry()  {}
func (Polygon) isGeometry() {}

func (c Circle) Validate() error {
	if !c.Center.Valid() {
		return &InvalidGeometryError{Reason: "circle center is not a valid coordinate"}
	}
	if math.IsNaN(c.RadiusKm) || math.IsInf(c.RadiusKm, 0) || c.RadiusKm < 0 {
		return &InvalidGeometryError{Reason: "circle radius must be a non-negative number"}
	}
	return nil
}

func (p Polygon) Validate() error {
	if len(p.Points) < 3 {
		return &InvalidGeometryError{Reason: "polygon needs at least 3 points"}
	}
	return nil
}
