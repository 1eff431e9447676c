// Package codec converts delivery zones between the domain tagged unions and
// their stored forms: GeoJSON geometry and a typed JSON fee rule.
package codec

import (
	"delivery-zone-service/internal/domain"
	"encoding/json"
	"fmt"
)

const (
	FeeTypeFixed  = "fixed"
	FeeTypePerKm  = "per_km"
	FeeTypeTiered = "tiered"
)

type feeRuleJSON struct {
	Type        string     `json:"type"`
	Amount      *float64   `json:"amount,omitempty"`
	AmountPerKm *float64   `json:"amount_per_km,omitempty"`
	Tiers       []tierJSON `json:"tiers,omitempty"`
}

type tierJSON struct {
	MaxDistanceKm float64 `json:"max_distance_km"`
	Fee           float64 `json:"fee"`
}

// DecodeFeeRule parses and validates a stored fee rule.
func DecodeFeeRule(raw []byte) (domain.FeeRule, error) {
	var fr feeRuleJSON
	if err := json.Unmarshal(raw, &fr); err != nil {
		return nil, fmt.Errorf("decode fee rule: %w", err)
	}

	var rule domain.FeeRule
	switch fr.Type {
	case FeeTypeFixed:
		if fr.Amount == nil {
			return nil, fmt.Errorf("decode fee rule: fixed fee requires amount")
		}
		rule = domain.FixedFee{Amount: *fr.Amount}
	case FeeTypePerKm:
		if fr.AmountPerKm == nil {
			return nil, fmt.Errorf("decode fee rule: per_km fee requires amount_per_km")
		}
		rule = domain.PerKmFee{AmountPerKm: *fr.AmountPerKm}
	case FeeTypeTiered:
		tiers := make([]domain.FeeTier, 0, len(fr.Tiers))
		for _, t := range fr.Tiers {
			tiers = append(tiers, domain.FeeTier{MaxDistanceKm: t.MaxDistanceKm, Fee: t.Fee})
		}
		rule = domain.TieredFee{Tiers: tiers}
	default:
		return nil, fmt.Errorf("decode fee rule: unknown type %q", fr.Type)
	}

	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("decode fee rule: %w", err)
	}

	return rule, nil
}

// EncodeFeeRule renders a fee rule in its stored JSON form.
func EncodeFeeRule(rule domain.FeeRule) ([]byte, error) {
	fr, err := feeRuleToJSON(rule)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fr)
}

func feeRuleToJSON(rule domain.FeeRule) (feeRuleJSON, error) {
	switch r := rule.(type) {
	case domain.FixedFee:
		return feeRuleJSON{Type: FeeTypeFixed, Amount: &r.Amount}, nil
	case domain.PerKmFee:
		return feeRuleJSON{Type: FeeTypePerKm, AmountPerKm: &r.AmountPerKm}, nil
	case domain.TieredFee:
		tiers := make([]tierJSON, 0, len(r.Tiers))
		for _, t := range r.Tiers {
			tiers = append(tiers, tierJSON{MaxDistanceKm: t.MaxDistanceKm, Fee: t.Fee})
		}
		return feeRuleJSON{Type: FeeTypeTiered, Tiers: tiers}, nil
	default:
		return feeRuleJSON{}, fmt.Errorf("encode fee rule: unsupported rule %T", rule)
	}
}
