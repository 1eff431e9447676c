package services

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

// fakeRestaurants and fakeZones implement the two ports separately,
// so the validator takes its two-read path.
type fakeRestaurants struct {
	profiles map[string]domain.RestaurantDeliveryProfile
	err      error
}

func (f *fakeRestaurants) GetDeliveryProfile(ctx context.Context, id string) (domain.RestaurantDeliveryProfile, error) {
	if f.err != nil {
		return domain.RestaurantDeliveryProfile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return domain.RestaurantDeliveryProfile{}, domain.ErrRestaurantNotFound
	}
	return p, nil
}

type fakeZones struct {
	zones map[string][]domain.DeliveryZone
	err   error
	calls int
}

func (f *fakeZones) ListActiveZones(ctx context.Context, id string) ([]domain.DeliveryZone, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.zones[id], nil
}

// fakeSnapshots serves profile and zones from one read.
type fakeSnapshots struct {
	fakeRestaurants
	fakeZones
	snapshotCalls int
}

func (f *fakeSnapshots) GetDeliverySnapshot(ctx context.Context, id string) (ports.DeliverySnapshot, error) {
	f.snapshotCalls++
	p, err := f.GetDeliveryProfile(ctx, id)
	if err != nil {
		return ports.DeliverySnapshot{}, err
	}
	return ports.DeliverySnapshot{Profile: p, Zones: f.zones[id]}, nil
}

func floatPtr(v float64) *float64 { return &v }

func newValidator(profile domain.RestaurantDeliveryProfile, zones ...domain.DeliveryZone) (*ZoneValidator, *fakeZones) {
	fz := &fakeZones{zones: map[string][]domain.DeliveryZone{profile.RestaurantID: zones}}
	fr := &fakeRestaurants{profiles: map[string]domain.RestaurantDeliveryProfile{profile.RestaurantID: profile}}
	return NewZoneValidator(fr, fz), fz
}

func lisbonProfile(defaultFee float64) domain.RestaurantDeliveryProfile {
	origin := lisbon
	return domain.RestaurantDeliveryProfile{RestaurantID: "tasca", Origin: &origin, DefaultDeliveryFee: defaultFee}
}

func TestValidateAcceptsDestinationInsideCircle(t *testing.T) {
	v, _ := newValidator(lisbonProfile(0), circleZone("centro", 1, 5))

	res, err := v.Validate(context.Background(), domain.ValidationRequest{
		RestaurantID: "tasca",
		Destination:  domain.Coordinates{Lat: 38.7300, Lng: -9.1400},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Valid {
		t.Fatalf("expected valid, got %+v", res)
	}
	if res.DeliveryFee != 3.00 {
		t.Fatalf("fee = %v, want 3.00", res.DeliveryFee)
	}
	if res.DistanceKm != 0.86 {
		t.Fatalf("distance = %v, want 0.86", res.DistanceKm)
	}
	if res.EstimatedTimeMinutes != 12 {
		t.Fatalf("eta = %d, want 12", res.EstimatedTimeMinutes)
	}
	if res.MatchedZone == nil || res.MatchedZone.ID != "centro" {
		t.Fatalf("matched zone = %+v, want centro", res.MatchedZone)
	}
}

func TestValidateDefaultRadiusWhenNoZones(t *testing.T) {
	v, _ := newValidator(lisbonProfile(2.5))

	far, err := v.Validate(context.Background(), domain.ValidationRequest{
		RestaurantID: "tasca",
		Destination:  domain.Coordinates{Lat: 38.8303, Lng: -9.1393},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if far.Valid {
		t.Fatalf("expected rejection, got %+v", far)
	}
	if far.Reason != domain.ReasonOutOfArea || !strings.Contains(far.Error, "10km") {
		t.Fatalf("unexpected rejection: reason=%q error=%q", far.Reason, far.Error)
	}
	if far.DeliveryFee != 0 || far.EstimatedTimeMinutes != 0 {
		t.Fatalf("rejection should carry no fee or eta: %+v", far)
	}

	near, err := v.Validate(context.Background(), domain.ValidationRequest{
		RestaurantID: "tasca",
		Destination:  domain.Coordinates{Lat: 38.7300, Lng: -9.1400},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near.Valid || near.DeliveryFee != 2.5 || near.MatchedZone != nil {
		t.Fatalf("unexpected default-mode result: %+v", near)
	}
	if near.EstimatedTimeMinutes != 12 {
		t.Fatalf("eta = %d, want 12", near.EstimatedTimeMinutes)
	}
}

func TestValidateDefaultModeMatchesDistance(t *testing.T) {
	v, _ := newValidator(lisbonProfile(1))

	for _, dLat := range []float64{0, 0.03, 0.0899, 0.0900, 0.0901, 0.2} {
		dest := domain.Coordinates{Lat: lisbon.Lat + dLat, Lng: lisbon.Lng}
		res, err := v.Validate(context.Background(), domain.ValidationRequest{RestaurantID: "tasca", Destination: dest})
		if err != nil {
			t.Fatalf("dLat=%v: unexpected error: %v", dLat, err)
		}
		d := distanceFor(dest)
		if res.Valid != (d <= DefaultMaxDistanceKm) {
			t.Fatalf("dLat=%v: valid=%t but distance=%v", dLat, res.Valid, d)
		}
	}
}

func distanceFor(dest domain.Coordinates) float64 {
	// One degree of latitude along a meridian.
	return math.Abs(dest.Lat-lisbon.Lat) * 6371.0 * math.Pi / 180
}

func TestValidateOutsideEveryZone(t *testing.T) {
	v, _ := newValidator(lisbonProfile(2.5), circleZone("centro", 1, 1))

	res, err := v.Validate(context.Background(), domain.ValidationRequest{
		RestaurantID: "tasca",
		Destination:  domain.Coordinates{Lat: 38.76, Lng: -9.1393},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Valid || res.Reason != domain.ReasonOutOfArea {
		t.Fatalf("expected outside_area, got %+v", res)
	}
	if res.Error != "address outside delivery area" {
		t.Fatalf("error = %q", res.Error)
	}
	if res.DeliveryFee != 0 {
		t.Fatalf("default fee must not be applied when zones exist: %v", res.DeliveryFee)
	}
}

func TestValidateMinimumOrder(t *testing.T) {
	zone := circleZone("centro", 1, 5)
	zone.MinOrderAmount = floatPtr(10)
	v, _ := newValidator(lisbonProfile(0), zone)
	dest := domain.Coordinates{Lat: 38.7300, Lng: -9.1400}

	tests := []struct {
		name   string
		amount *float64
		valid  bool
	}{
		{"below minimum", floatPtr(8), false},
		{"exactly minimum", floatPtr(10), true},
		{"above minimum", floatPtr(25), true},
		{"amount not supplied", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.Validate(context.Background(), domain.ValidationRequest{
				RestaurantID: "tasca",
				Destination:  dest,
				OrderAmount:  tt.amount,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Valid != tt.valid {
				t.Fatalf("valid = %t, want %t", res.Valid, tt.valid)
			}
			if !tt.valid {
				if res.Reason != domain.ReasonMinimumOrderNotMet {
					t.Fatalf("reason = %q, want minimum_order_not_met", res.Reason)
				}
				if !strings.Contains(res.Error, "10.00") {
					t.Fatalf("error %q should mention the threshold", res.Error)
				}
				if res.MatchedZone == nil || res.MatchedZone.ID != "centro" {
					t.Fatalf("rejection should name the matched zone")
				}
			}
		})
	}
}

func TestValidateMissingOriginIsConfigurationError(t *testing.T) {
	profile := domain.RestaurantDeliveryProfile{RestaurantID: "tasca", DefaultDeliveryFee: 2}
	v, fz := newValidator(profile, circleZone("centro", 1, 5))

	_, err := v.Validate(context.Background(), domain.ValidationRequest{RestaurantID: "tasca", Destination: lisbon})
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if fz.calls != 0 {
		t.Fatalf("zones read %d times before origin check", fz.calls)
	}
}

func TestValidateAntipodalDestinationIsRejectedWithoutZones(t *testing.T) {
	origin := domain.Coordinates{Lat: 0.74, Lng: -9.1393}
	v, _ := newValidator(domain.RestaurantDeliveryProfile{RestaurantID: "tasca", Origin: &origin, DefaultDeliveryFee: 2.5})

	res, err := v.Validate(context.Background(), domain.ValidationRequest{
		RestaurantID: "tasca",
		Destination:  domain.Coordinates{Lat: -0.74, Lng: 170.8607},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if math.IsNaN(res.DistanceKm) || res.DistanceKm < 20000 {
		t.Fatalf("distance = %v, want about 20015", res.DistanceKm)
	}
	if res.EstimatedTimeMinutes != 0 || res.DeliveryFee != 0 {
		t.Fatalf("rejection should carry no fee or eta: %+v", res)
	}
}

func TestValidateInvalidOriginIsConfigurationError(t *testing.T) {
	for _, origin := range []domain.Coordinates{
		{Lat: 95, Lng: -9.1393},
		{Lat: 38.7, Lng: math.NaN()},
	} {
		o := origin
		v, _ := newValidator(domain.RestaurantDeliveryProfile{RestaurantID: "tasca", Origin: &o, DefaultDeliveryFee: 2})

		_, err := v.Validate(context.Background(), domain.ValidationRequest{RestaurantID: "tasca", Destination: lisbon})
		if !IsConfigurationError(err) {
			t.Fatalf("origin %v: expected configuration error, got %v", origin, err)
		}
	}
}

func TestValidatePropagatesRepositoryErrors(t *testing.T) {
	v, _ := newValidator(lisbonProfile(0))

	_, err := v.Validate(context.Background(), domain.ValidationRequest{RestaurantID: "ghost", Destination: lisbon})
	if !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}

	boom := errors.New("connection reset")
	fz := &fakeZones{err: boom}
	fr := &fakeRestaurants{profiles: map[string]domain.RestaurantDeliveryProfile{"tasca": lisbonProfile(0)}}
	_, err = NewZoneValidator(fr, fz).Validate(context.Background(), domain.ValidationRequest{RestaurantID: "tasca", Destination: lisbon})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestValidateRejectsMalformedRequests(t *testing.T) {
	v, _ := newValidator(lisbonProfile(0))

	tests := []struct {
		name string
		req  domain.ValidationRequest
	}{
		{"empty restaurant", domain.ValidationRequest{Destination: lisbon}},
		{"latitude out of range", domain.ValidationRequest{RestaurantID: "tasca", Destination: domain.Coordinates{Lat: 91, Lng: 0}}},
		{"nan longitude", domain.ValidationRequest{RestaurantID: "tasca", Destination: domain.Coordinates{Lat: 0, Lng: math.NaN()}}},
		{"negative amount", domain.ValidationRequest{RestaurantID: "tasca", Destination: lisbon, OrderAmount: floatPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestValidatePrefersSnapshotRepository(t *testing.T) {
	origin := lisbon
	repo := &fakeSnapshots{
		fakeRestaurants: fakeRestaurants{profiles: map[string]domain.RestaurantDeliveryProfile{
			"tasca": {RestaurantID: "tasca", Origin: &origin},
		}},
		fakeZones: fakeZones{zones: map[string][]domain.DeliveryZone{"tasca": {circleZone("centro", 1, 5)}}},
	}

	res, err := NewZoneValidator(repo, repo).Validate(context.Background(), domain.ValidationRequest{RestaurantID: "tasca", Destination: lisbon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Valid {
		t.Fatalf("expected valid, got %+v", res)
	}
	if repo.snapshotCalls != 1 || repo.fakeZones.calls != 0 {
		t.Fatalf("snapshot calls=%d zone calls=%d, want 1 and 0", repo.snapshotCalls, repo.fakeZones.calls)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	zones := []domain.DeliveryZone{
		circleZone("wide", 3, 8),
		circleZone("narrow", 1, 0.5),
		circleZone("mid", 2, 2),
	}
	zones[2].FeeRule = domain.PerKmFee{AmountPerKm: 1.2}
	v, _ := newValidator(lisbonProfile(0), zones...)
	req := domain.ValidationRequest{RestaurantID: "tasca", Destination: domain.Coordinates{Lat: 38.7300, Lng: -9.1400}}

	first, err := v.Validate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.MatchedZone == nil || first.MatchedZone.ID != "mid" {
		t.Fatalf("matched %+v, want mid", first.MatchedZone)
	}
	if first.DeliveryFee != 1.03 {
		t.Fatalf("fee = %v, want 1.03", first.DeliveryFee)
	}

	for i := 0; i < 20; i++ {
		again, err := v.Validate(context.Background(), req)
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: results differ:\n%+v\n%+v", i, first, again)
		}
	}
}

func TestDecideNeverMutatesZones(t *testing.T) {
	zones := []domain.DeliveryZone{circleZone("b", 2, 5), circleZone("a", 1, 5)}
	before := []string{zones[0].ID, zones[1].ID}

	if _, err := Decide(lisbonProfile(0), zones, domain.ValidationRequest{RestaurantID: "tasca", Destination: lisbon}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zones[0].ID != before[0] || zones[1].ID != before[1] {
		t.Fatalf("input zones were reordered: %v", []string{zones[0].ID, zones[1].ID})
	}
}
