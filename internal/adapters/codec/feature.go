package codec

import (
	"delivery-zone-service/internal/domain"
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb/geojson"
)

// ZoneFromFeature builds a zone from a GeoJSON feature.
//
// Recognised properties: id, restaurant_id, name, priority, is_active (default
// true), fee_rule, min_order_amount, max_delivery_time_minutes and radius_km
// (required for Point geometries).
func ZoneFromFeature(f *geojson.Feature) (domain.DeliveryZone, error) {
	if f == nil {
		return domain.DeliveryZone{}, fmt.Errorf("zone from feature: feature is nil")
	}
	props := f.Properties

	id := props.MustString("id", "")
	if s, ok := f.ID.(string); ok && s != "" {
		id = s
	}
	if id == "" {
		return domain.DeliveryZone{}, fmt.Errorf("zone from feature: id is required")
	}

	radius := optionalFloat(props, "radius_km")
	geometry, err := fromOrb(f.Geometry, radius)
	if err != nil {
		return domain.DeliveryZone{}, fmt.Errorf("zone %q: %w", id, err)
	}

	rawFee, err := json.Marshal(props["fee_rule"])
	if err != nil {
		return domain.DeliveryZone{}, fmt.Errorf("zone %q: marshal fee_rule: %w", id, err)
	}
	fee, err := DecodeFeeRule(rawFee)
	if err != nil {
		return domain.DeliveryZone{}, fmt.Errorf("zone %q: %w", id, err)
	}

	zone := domain.DeliveryZone{
		ID:             id,
		RestaurantID:   props.MustString("restaurant_id", ""),
		Name:           props.MustString("name", id),
		Geometry:       geometry,
		FeeRule:        fee,
		MinOrderAmount: optionalFloat(props, "min_order_amount"),
		IsActive:       props.MustBool("is_active", true),
		Priority:       props.MustInt("priority", 0),
	}
	if m := optionalFloat(props, "max_delivery_time_minutes"); m != nil {
		minutes := int(math.Round(*m))
		zone.MaxDeliveryTimeMinutes = &minutes
	}

	if err := zone.Validate(); err != nil {
		return domain.DeliveryZone{}, err
	}

	return zone, nil
}

// FeatureFromZone renders a zone as a GeoJSON feature readable by ZoneFromFeature.
func FeatureFromZone(z domain.DeliveryZone) (*geojson.Feature, error) {
	og, radius, err := toOrb(z.Geometry)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", z.ID, err)
	}

	fr, err := feeRuleToJSON(z.FeeRule)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", z.ID, err)
	}
	// Round-trip through JSON so properties hold plain maps, as after decoding.
	raw, err := json.Marshal(fr)
	if err != nil {
		return nil, fmt.Errorf("zone %q: marshal fee rule: %w", z.ID, err)
	}
	var feeProp map[string]any
	if err := json.Unmarshal(raw, &feeProp); err != nil {
		return nil, fmt.Errorf("zone %q: unmarshal fee rule: %w", z.ID, err)
	}

	f := geojson.NewFeature(og)
	f.ID = z.ID
	f.Properties["id"] = z.ID
	f.Properties["restaurant_id"] = z.RestaurantID
	f.Properties["name"] = z.Name
	f.Properties["priority"] = z.Priority
	f.Properties["is_active"] = z.IsActive
	f.Properties["fee_rule"] = feeProp
	if radius != nil {
		f.Properties["radius_km"] = *radius
	}
	if z.MinOrderAmount != nil {
		f.Properties["min_order_amount"] = *z.MinOrderAmount
	}
	if z.MaxDeliveryTimeMinutes != nil {
		f.Properties["max_delivery_time_minutes"] = *z.MaxDeliveryTimeMinutes
	}

	return f, nil
}

// DecodeZoneCollection parses a FeatureCollection of zones. Features that fail
// to decode are returned in errs and left out of zones.
func DecodeZoneCollection(raw []byte) (zones []domain.DeliveryZone, errs []error, err error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode zone collection: %w", err)
	}

	zones = make([]domain.DeliveryZone, 0, len(fc.Features))
	for i, f := range fc.Features {
		z, zerr := ZoneFromFeature(f)
		if zerr != nil {
			errs = append(errs, fmt.Errorf("feature #%d: %w", i+1, zerr))
			continue
		}
		zones = append(zones, z)
	}

	return zones, errs, nil
}

// EncodeZoneCollection renders zones as a FeatureCollection.
func EncodeZoneCollection(zones []domain.DeliveryZone) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		f, err := FeatureFromZone(z)
		if err != nil {
			return nil, fmt.Errorf("encode zone collection: %w", err)
		}
		fc.Append(f)
	}
	return fc.MarshalJSON()
}

func optionalFloat(props geojson.Properties, key string) *float64 {
	v, ok := props[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	}
	return nil
}
