package ports

import (
	"context"
	"delivery-zone-service/internal/domain"
)

// Port: a boundary for reading restaurant delivery settings.
type RestaurantRepository interface {
	// Return the delivery profile, or domain.ErrRestaurantNotFound.
	GetDeliveryProfile(ctx context.Context, restaurantID string) (domain.RestaurantDeliveryProfile, error)
}

// Optional extension implemented by adapters that store profile and zones together.
// Validation prefers it so both come from a single read.
type DeliverySnapshotRepository interface {
	RestaurantRepository
	ZoneRepository
	// Return the profile and active zones as one consistent snapshot.
	GetDeliverySnapshot(ctx context.Context, restaurantID string) (DeliverySnapshot, error)
}

// Profile and zones of one restaurant read at the same time.
type DeliverySnapshot struct {
	Profile domain.RestaurantDeliveryProfile
	Zones   []domain.DeliveryZone
}
