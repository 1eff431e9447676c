package domain

import "fmt"

// A named, prioritized delivery-coverage region owned by one restaurant.
// Zones are authored by external settings tooling and are read-only here.
// Lower Priority values are evaluated first.
type DeliveryZone struct {
	ID                     string
	RestaurantID           string
	Name                   string
	Geometry               Geometry
	FeeRule                FeeRule
	MinOrderAmount         *float64
	MaxDeliveryTimeMinutes *int
	IsActive               bool
	Priority               int
}

// Validate checks the fee rule and optional limits. Geometry is checked
// separately by the matcher so one broken shape only skips its own zone.
func (z DeliveryZone) Validate() error {
	if z.FeeRule == nil {
		return fmt.Errorf("zone %q: fee rule is required", z.ID)
	}
	if err := z.FeeRule.Validate(); err != nil {
		return fmt.Errorf("zone %q: %w", z.ID, err)
	}
	if z.MinOrderAmount != nil && !nonNegative(*z.MinOrderAmount) {
		return fmt.Errorf("zone %q: min order amount must be a non-negative number", z.ID)
	}
	if z.MaxDeliveryTimeMinutes != nil && *z.MaxDeliveryTimeMinutes < 0 {
		return fmt.Errorf("zone %q: max delivery time must not be negative", z.ID)
	}
	return nil
}
