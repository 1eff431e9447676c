package geo

import "delivery-zone-service/internal/domain"

// PointInPolygon applies the even-odd ray-casting rule.
//
// Latitude is the casting axis and longitude the ray direction: for every
// edge (j, i), taken pairwise with wraparound, the ray crosses it when the
// edge straddles p.Lng and p.Lat is below the edge's latitude at p.Lng.
// Points exactly on the boundary get whatever the rule yields.
func PointInPolygon(p domain.Coordinates, polygon domain.Polygon) (bool, error) {
	if err := polygon.Validate(); err != nil {
		return false, err
	}

	pts := polygon.Points
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		xi, yi := pts[i].Lat, pts[i].Lng
		xj, yj := pts[j].Lat, pts[j].Lng

		if (yi > p.Lng) != (yj > p.Lng) &&
			p.Lat < (xj-xi)*(p.Lng-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside, nil
}
