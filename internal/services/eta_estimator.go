package services

import (
	"delivery-zone-service/internal/domain"
	"math"
)

const (
	// Fixed kitchen preparation time.
	prepMinutes = 10.0
	// Minutes per kilometre, roughly 30 km/h urban travel.
	minutesPerKm = 2.0
)

// EstimateMinutes returns ceil(10 + 2*distanceKm), capped at the zone's
// MaxDeliveryTimeMinutes when one is set. The cap only ever shortens the
// estimate. zone may be nil (default-radius mode).
func EstimateMinutes(distanceKm float64, zone *domain.DeliveryZone) int {
	raw := int(math.Ceil(prepMinutes + distanceKm*minutesPerKm))

	if zone != nil && zone.MaxDeliveryTimeMinutes != nil {
		return min(raw, *zone.MaxDeliveryTimeMinutes)
	}

	return raw
}
