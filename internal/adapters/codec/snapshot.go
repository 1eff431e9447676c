package codec

import (
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"
	"encoding/json"
	"fmt"
)

type snapshotJSON struct {
	RestaurantID       string          `json:"restaurant_id"`
	Origin             *coordJSON      `json:"origin"`
	DefaultDeliveryFee float64         `json:"default_delivery_fee"`
	Zones              json.RawMessage `json:"zones"`
}

type coordJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// EncodeSnapshot renders a profile and its zones as one JSON document.
func EncodeSnapshot(s ports.DeliverySnapshot) ([]byte, error) {
	zones, err := EncodeZoneCollection(s.Zones)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	out := snapshotJSON{
		RestaurantID:       s.Profile.RestaurantID,
		DefaultDeliveryFee: s.Profile.DefaultDeliveryFee,
		Zones:              zones,
	}
	if s.Profile.Origin != nil {
		out.Origin = &coordJSON{Lat: s.Profile.Origin.Lat, Lng: s.Profile.Origin.Lng}
	}

	return json.Marshal(out)
}

// DecodeSnapshot parses a document written by EncodeSnapshot.
// Any zone that fails to decode fails the whole snapshot.
func DecodeSnapshot(raw []byte) (ports.DeliverySnapshot, error) {
	var in snapshotJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	zones, errs, err := DecodeZoneCollection(in.Zones)
	if err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if len(errs) > 0 {
		return ports.DeliverySnapshot{}, fmt.Errorf("decode snapshot: %w", errs[0])
	}

	profile := domain.RestaurantDeliveryProfile{
		RestaurantID:       in.RestaurantID,
		DefaultDeliveryFee: in.DefaultDeliveryFee,
	}
	if in.Origin != nil {
		profile.Origin = &domain.Coordinates{Lat: in.Origin.Lat, Lng: in.Origin.Lng}
	}

	return ports.DeliverySnapshot{Profile: profile, Zones: zones}, nil
}
