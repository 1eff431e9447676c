package dto

type CoordinatesRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type ValidateDeliveryRequest struct {
	RestaurantID string              `json:"restaurantId"`
	Destination  *CoordinatesRequest `json:"destination"`
	OrderAmount  *float64            `json:"orderAmount,omitempty"`
}

type FeeTierResponse struct {
	MaxDistanceKm float64 `json:"maxDistanceKm"`
	Fee           float64 `json:"fee"`
}

// FeeRuleResponse carries exactly one of Amount, AmountPerKm or Tiers, selected by Type.
type FeeRuleResponse struct {
	Type        string            `json:"type"`
	Amount      *float64          `json:"amount,omitempty"`
	AmountPerKm *float64          `json:"amountPerKm,omitempty"`
	Tiers       []FeeTierResponse `json:"tiers,omitempty"`
}

type ZoneResponse struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	FeeRule                FeeRuleResponse `json:"feeRule"`
	MinOrderAmount         *float64        `json:"minOrderAmount,omitempty"`
	MaxDeliveryTimeMinutes *int            `json:"maxDeliveryTimeMinutes,omitempty"`
	Priority               int             `json:"priority"`
}

type ValidateDeliveryResponse struct {
	Valid                bool          `json:"valid"`
	Zone                 *ZoneResponse `json:"zone,omitempty"`
	DeliveryFee          float64       `json:"deliveryFee"`
	EstimatedTimeMinutes int           `json:"estimatedTimeMinutes"`
	DistanceKm           float64       `json:"distanceKm"`
	Error                string        `json:"error,omitempty"`
	Reason               string        `json:"reason,omitempty"`
}
