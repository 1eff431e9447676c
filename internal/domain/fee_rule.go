package domain

import (
	"fmt"
	"math"
)

// FeeRule decides how a zone prices a delivery.
// The set of implementations is closed: FixedFee, PerKmFee and TieredFee.
type FeeRule interface {
	// Validate rejects rules that could produce a negative or undefined fee.
	Validate() error
	isFeeRule()
}

// Flat amount regardless of distance.
type FixedFee struct {
	Amount float64
}

// Linear price per great-circle kilometre, no minimum.
type PerKmFee struct {
	AmountPerKm float64
}

// One step of a tiered scale: distances up to MaxDistanceKm cost Fee.
type FeeTier struct {
	MaxDistanceKm float64
	Fee           float64
}

// Step pricing by distance. Distances past the last threshold pay the last tier's fee.
type TieredFee struct {
	Tiers []FeeTier
}

func (FixedFee) isFeeRule()  {}
func (PerKmFee) isFeeRule()  {}
func (TieredFee) isFeeRule() {}

func (f FixedFee) Validate() error {
	if !nonNegative(f.Amount) {
		return fmt.Errorf("fixed fee: amount must be a non-negative number, got %v", f.Amount)
	}
	return nil
}

func (f PerKmFee) Validate() error {
	if !nonNegative(f.AmountPerKm) {
		return fmt.Errorf("per-km fee: amount per km must be a non-negative number, got %v", f.AmountPerKm)
	}
	return nil
}

func (f TieredFee) Validate() error {
	if len(f.Tiers) == 0 {
		return fmt.Errorf("tiered fee: at least one tier is required")
	}
	for i, t := range f.Tiers {
		if !nonNegative(t.MaxDistanceKm) {
			return fmt.Errorf("tiered fee: tier %d max distance must be a non-negative number, got %v", i+1, t.MaxDistanceKm)
		}
		if !nonNegative(t.Fee) {
			return fmt.Errorf("tiered fee: tier %d fee must be a non-negative number, got %v", i+1, t.Fee)
		}
	}
	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
