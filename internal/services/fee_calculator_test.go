package services

import (
	"delivery-zone-service/internal/domain"
	"testing"
)

func TestComputeFeeFixedIsConstant(t *testing.T) {
	zone := domain.DeliveryZone{FeeRule: domain.FixedFee{Amount: 3}}

	for _, d := range []float64{0, 0.86, 4.9, 50} {
		if got := ComputeFee(zone, d); got != 3 {
			t.Fatalf("ComputeFee(%v) = %v, want 3", d, got)
		}
	}
}

func TestComputeFeePerKmMonotonic(t *testing.T) {
	zone := domain.DeliveryZone{FeeRule: domain.PerKmFee{AmountPerKm: 0.75}}

	prev := -1.0
	for _, d := range []float64{0, 0.5, 1, 2.5, 7, 12} {
		got := ComputeFee(zone, d)
		if got < prev {
			t.Fatalf("fee decreased at %vkm: %v < %v", d, got, prev)
		}
		prev = got
	}

	if got := ComputeFee(zone, 4); got != 3 {
		t.Fatalf("ComputeFee(4km) = %v, want 3", got)
	}
	if got := ComputeFee(zone, 0); got != 0 {
		t.Fatalf("ComputeFee(0km) = %v, want 0 (no minimum)", got)
	}
}

func TestComputeFeeTieredSaturates(t *testing.T) {
	zone := domain.DeliveryZone{FeeRule: domain.TieredFee{Tiers: []domain.FeeTier{
		{MaxDistanceKm: 5, Fee: 3},
		{MaxDistanceKm: 10, Fee: 5},
	}}}

	tests := []struct {
		distance float64
		want     float64
	}{
		{3, 3},
		{5, 3},
		{7, 5},
		{10, 5},
		{15, 5},
	}

	for _, tc := range tests {
		if got := ComputeFee(zone, tc.distance); got != tc.want {
			t.Errorf("ComputeFee(%vkm) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}

func TestComputeFeeTieredUnsortedInput(t *testing.T) {
	zone := domain.DeliveryZone{FeeRule: domain.TieredFee{Tiers: []domain.FeeTier{
		{MaxDistanceKm: 10, Fee: 5},
		{MaxDistanceKm: 2, Fee: 1.5},
		{MaxDistanceKm: 5, Fee: 3},
	}}}

	if got := ComputeFee(zone, 1); got != 1.5 {
		t.Fatalf("ComputeFee(1km) = %v, want 1.5", got)
	}
	if got := ComputeFee(zone, 4); got != 3 {
		t.Fatalf("ComputeFee(4km) = %v, want 3", got)
	}
	if got := ComputeFee(zone, 40); got != 5 {
		t.Fatalf("ComputeFee(40km) = %v, want 5", got)
	}

	tiers := zone.FeeRule.(domain.TieredFee).Tiers
	if tiers[0].MaxDistanceKm != 10 {
		t.Fatal("ComputeFee must not reorder the zone's tiers")
	}
}

func TestComputeFeeNeverNegative(t *testing.T) {
	zones := []domain.DeliveryZone{
		{FeeRule: domain.FixedFee{Amount: -2}},
		{FeeRule: domain.PerKmFee{AmountPerKm: -1}},
		{FeeRule: domain.TieredFee{}},
		{},
	}

	for i, z := range zones {
		if got := ComputeFee(z, 3); got < 0 {
			t.Fatalf("zone %d: fee %v is negative", i, got)
		}
	}
}

func TestRoundTo2(t *testing.T) {
	tests := map[float64]float64{
		0.8583: 0.86,
		2.346:  2.35,
		3:      3,
		1.004:  1,
	}
	for in, want := range tests {
		if got := roundTo2(in); got != want {
			t.Errorf("roundTo2(%v) = %v, want %v", in, got, want)
		}
	}
}
