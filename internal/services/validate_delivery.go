package services

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/geo"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// Maximum delivery distance when a restaurant has configured no zones.
const DefaultMaxDistanceKm = 10.0

const (
	msgOutsideDefaultRadius = "address outside delivery area (max 10km)"
	msgOutsideArea          = "address outside delivery area"
	msgLocationMissing      = "restaurant location not configured"
	msgLocationInvalid      = "restaurant location is not a valid coordinate"
)

// DeliveryValidator decides whether a restaurant can deliver to a destination.
//
// Business rejections (outside area, minimum order) are returned as results
// with Valid=false. Errors are reserved for system-level failures.
type DeliveryValidator interface {
	Validate(ctx context.Context, req domain.ValidationRequest) (domain.ValidationResult, error)
}

// ZoneValidator is the zone-based DeliveryValidator.
// It holds no mutable state; every call is a function of the repository snapshot it reads.
type ZoneValidator struct {
	Restaurants ports.RestaurantRepository
	Zones       ports.ZoneRepository
}

func NewZoneValidator(restaurants ports.RestaurantRepository, zones ports.ZoneRepository) *ZoneValidator {
	return &ZoneValidator{Restaurants: restaurants, Zones: zones}
}

func (v *ZoneValidator) Validate(
	ctx context.Context,
	req domain.ValidationRequest,
) (_ domain.ValidationResult, err error) {
	defer obs.Time(ctx, "delivery.Validate")(&err)

	if strings.TrimSpace(req.RestaurantID) == "" {
		return domain.ValidationResult{}, fmt.Errorf("validate delivery: restaurant id must be non-empty: %w", domain.ErrInvalidRequest)
	}
	if !req.Destination.Valid() {
		return domain.ValidationResult{}, fmt.Errorf("validate delivery: destination is not a valid coordinate: %w", domain.ErrInvalidRequest)
	}
	if req.OrderAmount != nil && *req.OrderAmount < 0 {
		return domain.ValidationResult{}, fmt.Errorf("validate delivery: order amount must not be negative: %w", domain.ErrInvalidRequest)
	}

	snap, err := v.snapshot(ctx, req.RestaurantID)
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("validate delivery: %w", err)
	}

	return Decide(snap.Profile, snap.Zones, req)
}

// Read profile and zones once. Adapters that can serve both in one read are preferred.
func (v *ZoneValidator) snapshot(ctx context.Context, restaurantID string) (ports.DeliverySnapshot, error) {
	if sr, ok := v.Restaurants.(ports.DeliverySnapshotRepository); ok {
		snap, err := sr.GetDeliverySnapshot(ctx, restaurantID)
		if err != nil {
			return ports.DeliverySnapshot{}, fmt.Errorf("get delivery snapshot: %w", err)
		}
		return snap, nil
	}

	profile, err := v.Restaurants.GetDeliveryProfile(ctx, restaurantID)
	if err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("get delivery profile: %w", err)
	}

	// Missing origin fails before zones are read.
	if profile.Origin == nil {
		return ports.DeliverySnapshot{Profile: profile}, nil
	}

	zones, err := v.Zones.ListActiveZones(ctx, restaurantID)
	if err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("list active zones: %w", err)
	}

	return ports.DeliverySnapshot{Profile: profile, Zones: zones}, nil
}

// Decide is the pure validation decision over one snapshot of restaurant data.
// It returns a *domain.ConfigurationError when the restaurant has no origin.
func Decide(
	profile domain.RestaurantDeliveryProfile,
	zones []domain.DeliveryZone,
	req domain.ValidationRequest,
) (domain.ValidationResult, error) {
	if profile.Origin == nil {
		return domain.ValidationResult{}, &domain.ConfigurationError{
			RestaurantID: req.RestaurantID,
			Reason:       msgLocationMissing,
		}
	}
	if !profile.Origin.Valid() {
		return domain.ValidationResult{}, &domain.ConfigurationError{
			RestaurantID: req.RestaurantID,
			Reason:       msgLocationInvalid,
		}
	}

	distanceKm := geo.DistanceKm(*profile.Origin, req.Destination)

	if !hasActiveZone(zones) {
		if distanceKm > DefaultMaxDistanceKm {
			return domain.ValidationResult{
				Valid:      false,
				DistanceKm: roundTo2(distanceKm),
				Reason:     domain.ReasonOutOfArea,
				Error:      msgOutsideDefaultRadius,
			}, nil
		}

		return domain.ValidationResult{
			Valid:                true,
			DeliveryFee:          roundTo2(profile.DefaultDeliveryFee),
			EstimatedTimeMinutes: EstimateMinutes(distanceKm, nil),
			DistanceKm:           roundTo2(distanceKm),
		}, nil
	}

	match := MatchZone(zones, req.Destination)
	if match.Zone == nil {
		return domain.ValidationResult{
			Valid:       false,
			DistanceKm:  roundTo2(distanceKm),
			Reason:      domain.ReasonOutOfArea,
			Error:       msgOutsideArea,
			Diagnostics: match.Diagnostics,
		}, nil
	}

	zone := *match.Zone

	if req.OrderAmount != nil && zone.MinOrderAmount != nil && *req.OrderAmount < *zone.MinOrderAmount {
		return domain.ValidationResult{
			Valid:       false,
			MatchedZone: &zone,
			DistanceKm:  roundTo2(distanceKm),
			Reason:      domain.ReasonMinimumOrderNotMet,
			Error:       fmt.Sprintf("minimum order: €%.2f", *zone.MinOrderAmount),
			Diagnostics: match.Diagnostics,
		}, nil
	}

	return domain.ValidationResult{
		Valid:                true,
		MatchedZone:          &zone,
		DeliveryFee:          roundTo2(ComputeFee(zone, distanceKm)),
		EstimatedTimeMinutes: EstimateMinutes(distanceKm, &zone),
		DistanceKm:           roundTo2(distanceKm),
		Diagnostics:          match.Diagnostics,
	}, nil
}

func hasActiveZone(zones []domain.DeliveryZone) bool {
	for _, z := range zones {
		if z.IsActive {
			return true
		}
	}
	return false
}

// IsConfigurationError reports whether err is a *domain.ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *domain.ConfigurationError
	return errors.As(err, &ce)
}
