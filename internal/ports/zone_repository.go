package ports

import (
	"context"
	"delivery-zone-service/internal/domain"
)

// Port: a boundary for reading a restaurant's delivery zones.
type ZoneRepository interface {
	// Return the restaurant's active zones with geometry and fee rules parsed.
	// Implementations return them ordered by ascending priority and must not
	// return a slice shared with other callers.
	ListActiveZones(ctx context.Context, restaurantID string) ([]domain.DeliveryZone, error)
}
