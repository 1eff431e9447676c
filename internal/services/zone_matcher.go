package services

import (
	"cmp"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/geo"
	"errors"
	"fmt"
	"slices"
)

// Result of matching a destination against a restaurant's zones.
// Zone is nil when no zone contains the destination.
type MatchResult struct {
	Zone        *domain.DeliveryZone
	Diagnostics []domain.ZoneDiagnostic
}

// MatchZone returns the first active zone, in ascending priority order, whose
// geometry contains destination.
//
// Inactive zones are ignored. Zones with equal priority keep their input order.
// Evaluation stops at the first match, so lower-priority zones that would also
// contain the point are never evaluated. A zone with malformed geometry is
// recorded as skipped and matching continues with the next zone. So is a zone
// whose fee rule or limits fail DeliveryZone.Validate.
func MatchZone(zones []domain.DeliveryZone, destination domain.Coordinates) MatchResult {
	ordered := make([]*domain.DeliveryZone, 0, len(zones))
	for i := range zones {
		if zones[i].IsActive {
			ordered = append(ordered, &zones[i])
		}
	}
	slices.SortStableFunc(ordered, func(a, b *domain.DeliveryZone) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	res := MatchResult{Diagnostics: make([]domain.ZoneDiagnostic, 0, len(ordered))}
	for _, z := range ordered {
		diag := domain.ZoneDiagnostic{ZoneID: z.ID, ZoneName: z.Name, Priority: z.Priority}

		contained, err := zoneContains(z, destination)
		if err != nil {
			diag.Skipped = true
			diag.Err = err
			res.Diagnostics = append(res.Diagnostics, diag)
			continue
		}

		diag.Contained = contained
		res.Diagnostics = append(res.Diagnostics, diag)

		if contained {
			res.Zone = z
			return res
		}
	}

	return res
}

func zoneContains(z *domain.DeliveryZone, p domain.Coordinates) (bool, error) {
	// A zone that cannot be priced must never match.
	if err := z.Validate(); err != nil {
		return false, err
	}
	if z.Geometry == nil {
		return false, &domain.InvalidGeometryError{ZoneID: z.ID, Reason: "geometry is missing"}
	}

	if err := z.Geometry.Validate(); err != nil {
		return false, withZoneID(err, z.ID)
	}

	switch g := z.Geometry.(type) {
	case domain.Circle:
		return geo.PointInCircle(p, g.Center, g.RadiusKm), nil
	case domain.Polygon:
		inside, err := geo.PointInPolygon(p, g)
		if err != nil {
			return false, withZoneID(err, z.ID)
		}
		return inside, nil
	default:
		return false, &domain.InvalidGeometryError{ZoneID: z.ID, Reason: fmt.Sprintf("unsupported geometry %T", g)}
	}
}

func withZoneID(err error, zoneID string) error {
	var ge *domain.InvalidGeometryError
	if errors.As(err, &ge) && ge.ZoneID == "" {
		return &domain.InvalidGeometryError{ZoneID: zoneID, Reason: ge.Reason}
	}
	return err
}
