package repositories

import (
	"cmp"
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"
	"slices"
	"sync"
)

// In-memory implementation of the restaurant and zone ports.
// Used when no DATABASE_URL is configured, and in tests.
type MemoryDeliveryRepository struct {
	mu          sync.RWMutex
	restaurants map[string]domain.RestaurantDeliveryProfile
	zones       map[string][]domain.DeliveryZone
}

func NewMemoryDeliveryRepository() *MemoryDeliveryRepository {
	return &MemoryDeliveryRepository{
		restaurants: map[string]domain.RestaurantDeliveryProfile{},
		zones:       map[string][]domain.DeliveryZone{},
	}
}

// Insert or replace a restaurant profile.
func (m *MemoryDeliveryRepository) PutRestaurant(p domain.RestaurantDeliveryProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[p.RestaurantID] = p
}

// Replace every zone of a restaurant.
func (m *MemoryDeliveryRepository) PutZones(restaurantID string, zones []domain.DeliveryZone) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones[restaurantID] = slices.Clone(zones)
}

func (m *MemoryDeliveryRepository) GetDeliveryProfile(
	ctx context.Context,
	restaurantID string,
) (domain.RestaurantDeliveryProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profileLocked(restaurantID)
}

func (m *MemoryDeliveryRepository) ListActiveZones(ctx context.Context, restaurantID string) ([]domain.DeliveryZone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeZonesLocked(restaurantID), nil
}

func (m *MemoryDeliveryRepository) GetDeliverySnapshot(ctx context.Context, restaurantID string) (ports.DeliverySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, err := m.profileLocked(restaurantID)
	if err != nil {
		return ports.DeliverySnapshot{}, err
	}
	return ports.DeliverySnapshot{Profile: p, Zones: m.activeZonesLocked(restaurantID)}, nil
}

func (m *MemoryDeliveryRepository) profileLocked(restaurantID string) (domain.RestaurantDeliveryProfile, error) {
	p, ok := m.restaurants[restaurantID]
	if !ok {
		return domain.RestaurantDeliveryProfile{}, domain.ErrRestaurantNotFound
	}
	if p.Origin != nil {
		origin := *p.Origin
		p.Origin = &origin
	}
	return p, nil
}

func (m *MemoryDeliveryRepository) activeZonesLocked(restaurantID string) []domain.DeliveryZone {
	out := make([]domain.DeliveryZone, 0, len(m.zones[restaurantID]))
	for _, z := range m.zones[restaurantID] {
		if z.IsActive {
			out = append(out, z)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.DeliveryZone) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return out
}
