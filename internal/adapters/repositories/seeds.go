package repositories

import (
	"delivery-zone-service/internal/adapters/codec"
	"delivery-zone-service/internal/domain"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RestaurantSeed is one entry of the restaurants YAML seed file.
type RestaurantSeed struct {
	ID                 string   `yaml:"id"`
	OriginLat          *float64 `yaml:"origin_lat"`
	OriginLng          *float64 `yaml:"origin_lng"`
	DefaultDeliveryFee float64  `yaml:"default_delivery_fee"`
}

type restaurantSeedFile struct {
	Restaurants []RestaurantSeed `yaml:"restaurants"`
}

// Read restaurant delivery profiles from a YAML file.
func LoadRestaurantSeeds(path string) ([]domain.RestaurantDeliveryProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load restaurant seeds: read %q: %w", path, err)
	}

	var file restaurantSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("load restaurant seeds: parse yaml: %w", err)
	}

	out := make([]domain.RestaurantDeliveryProfile, 0, len(file.Restaurants))
	for i, r := range file.Restaurants {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("load restaurant seeds: entry %d: id cannot be empty", i+1)
		}
		if r.DefaultDeliveryFee < 0 {
			return nil, fmt.Errorf("load restaurant seeds: restaurant %q: default_delivery_fee must not be negative", id)
		}

		p := domain.RestaurantDeliveryProfile{RestaurantID: id, DefaultDeliveryFee: r.DefaultDeliveryFee}
		switch {
		case r.OriginLat != nil && r.OriginLng != nil:
			origin := domain.Coordinates{Lat: *r.OriginLat, Lng: *r.OriginLng}
			if !origin.Valid() {
				return nil, fmt.Errorf("load restaurant seeds: restaurant %q: origin out of range", id)
			}
			p.Origin = &origin
		case r.OriginLat != nil || r.OriginLng != nil:
			return nil, fmt.Errorf("load restaurant seeds: restaurant %q: origin needs both origin_lat and origin_lng", id)
		}

		out = append(out, p)
	}

	return out, nil
}

// Read zones from a GeoJSON FeatureCollection. Features that cannot be
// decoded are logged and skipped.
func LoadZoneSeeds(path string) ([]domain.DeliveryZone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load zone seeds: read %q: %w", path, err)
	}

	zones, errs, err := codec.DecodeZoneCollection(data)
	if err != nil {
		return nil, fmt.Errorf("load zone seeds: %w", err)
	}
	for _, e := range errs {
		log.Printf("zone seed skipped: path=%s err=%v", path, e)
	}

	for _, z := range zones {
		if strings.TrimSpace(z.RestaurantID) == "" {
			return nil, fmt.Errorf("load zone seeds: zone %q: restaurant_id is required", z.ID)
		}
	}

	return zones, nil
}

// Fill a memory repository from restaurant and zone seeds.
func SeedMemory(repo *MemoryDeliveryRepository, restaurants []domain.RestaurantDeliveryProfile, zones []domain.DeliveryZone) {
	for _, r := range restaurants {
		repo.PutRestaurant(r)
	}

	byRestaurant := make(map[string][]domain.DeliveryZone)
	for _, z := range zones {
		byRestaurant[z.RestaurantID] = append(byRestaurant[z.RestaurantID], z)
	}
	for id, zs := range byRestaurant {
		repo.PutZones(id, zs)
	}
}
