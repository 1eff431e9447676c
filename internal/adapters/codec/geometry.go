package codec

import (
	"delivery-zone-service/internal/domain"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DecodeGeometry parses a GeoJSON geometry into a zone shape.
//
// A Point is the center of a circle and requires radiusKm. A Polygon uses its
// outer ring; holes are ignored and a closing vertex equal to the first one is
// dropped. Point count is not checked here so the matcher can flag it.
func DecodeGeometry(raw []byte, radiusKm *float64) (domain.Geometry, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}

	return fromOrb(g.Geometry(), radiusKm)
}

func fromOrb(g orb.Geometry, radiusKm *float64) (domain.Geometry, error) {
	switch v := g.(type) {
	case orb.Point:
		if radiusKm == nil {
			return nil, fmt.Errorf("decode geometry: point geometry requires radius_km")
		}
		return domain.Circle{Center: pointToCoord(v), RadiusKm: *radiusKm}, nil
	case orb.Polygon:
		if len(v) == 0 {
			return domain.Polygon{}, nil
		}
		ring := v[0]
		if len(ring) > 1 && ring[0].Equal(ring[len(ring)-1]) {
			ring = ring[:len(ring)-1]
		}
		pts := make([]domain.Coordinates, 0, len(ring))
		for _, p := range ring {
			pts = append(pts, pointToCoord(p))
		}
		return domain.Polygon{Points: pts}, nil
	case nil:
		return nil, fmt.Errorf("decode geometry: geometry is empty")
	default:
		return nil, fmt.Errorf("decode geometry: unsupported type %s", g.GeoJSONType())
	}
}

// EncodeGeometry renders a zone shape as GeoJSON. Circles become a Point and
// a separate radius.
func EncodeGeometry(g domain.Geometry) ([]byte, *float64, error) {
	og, radius, err := toOrb(g)
	if err != nil {
		return nil, nil, err
	}

	raw, err := geojson.NewGeometry(og).MarshalJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("encode geometry: %w", err)
	}

	return raw, radius, nil
}

func toOrb(g domain.Geometry) (orb.Geometry, *float64, error) {
	switch v := g.(type) {
	case domain.Circle:
		r := v.RadiusKm
		return coordToPoint(v.Center), &r, nil
	case domain.Polygon:
		ring := make(orb.Ring, 0, len(v.Points)+1)
		for _, c := range v.Points {
			ring = append(ring, coordToPoint(c))
		}
		if len(ring) > 0 {
			ring = append(ring, ring[0])
		}
		return orb.Polygon{ring}, nil, nil
	default:
		return nil, nil, fmt.Errorf("encode geometry: unsupported geometry %T", g)
	}
}

// GeoJSON positions are [lng, lat].
func pointToCoord(p orb.Point) domain.Coordinates {
	return domain.Coordinates{Lat: p.Lat(), Lng: p.Lon()}
}

func coordToPoint(c domain.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}
