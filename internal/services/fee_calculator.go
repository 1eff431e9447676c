package services

import (
	"delivery-zone-service/internal/domain"
	"math"
	"slices"
)

// ComputeFee prices a delivery of distanceKm under the zone's fee rule.
//
// Tiered rules pick the first tier, by ascending threshold, whose threshold
// covers the distance; past the largest threshold the last tier's fee applies.
// The result is never negative.
func ComputeFee(zone domain.DeliveryZone, distanceKm float64) float64 {
	var fee float64

	switch r := zone.FeeRule.(type) {
	case domain.FixedFee:
		fee = r.Amount
	case domain.PerKmFee:
		fee = r.AmountPerKm * distanceKm
	case domain.TieredFee:
		fee = tieredFee(r.Tiers, distanceKm)
	}

	return math.Max(fee, 0)
}

func tieredFee(tiers []domain.FeeTier, distanceKm float64) float64 {
	if len(tiers) == 0 {
		return 0
	}

	sorted := slices.Clone(tiers)
	slices.SortStableFunc(sorted, func(a, b domain.FeeTier) int {
		switch {
		case a.MaxDistanceKm < b.MaxDistanceKm:
			return -1
		case a.MaxDistanceKm > b.MaxDistanceKm:
			return 1
		}
		return 0
	})

	for _, t := range sorted {
		if t.MaxDistanceKm >= distanceKm {
			return t.Fee
		}
	}

	return sorted[len(sorted)-1].Fee
}

// Round half away from zero to 2 decimal places.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
