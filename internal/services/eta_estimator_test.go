package services

import (
	"delivery-zone-service/internal/domain"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestEstimateMinutes(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		zone     *domain.DeliveryZone
		want     int
	}{
		{"no zone at origin", 0, nil, 10},
		{"rounds up", 0.86, nil, 12},
		{"exact", 5, nil, 20},
		{"cap shortens", 12.5, &domain.DeliveryZone{MaxDeliveryTimeMinutes: intPtr(20)}, 20},
		{"cap above raw has no effect", 2, &domain.DeliveryZone{MaxDeliveryTimeMinutes: intPtr(45)}, 14},
		{"zone without cap", 12.5, &domain.DeliveryZone{}, 35},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateMinutes(tc.distance, tc.zone); got != tc.want {
				t.Fatalf("EstimateMinutes = %d, want %d", got, tc.want)
			}
		})
	}
}
