package domain

// Input of a delivery validation. Destination is already geocoded by the caller.
type ValidationRequest struct {
	RestaurantID string
	Destination  Coordinates
	OrderAmount  *float64
}

// Why a validation was rejected. Empty when the delivery is valid.
type RejectionReason string

const (
	ReasonOutOfArea          RejectionReason = "outside_area"
	ReasonMinimumOrderNotMet RejectionReason = "minimum_order_not_met"
)

// Outcome of a delivery validation.
// Business rejections are carried here with Valid=false; they are never errors.
// DeliveryFee and DistanceKm are rounded to 2 decimal places.
type ValidationResult struct {
	Valid                bool
	MatchedZone          *DeliveryZone
	DeliveryFee          float64
	EstimatedTimeMinutes int
	DistanceKm           float64
	Reason               RejectionReason
	Error                string

	// Per-zone evaluation trace; not part of the caller-facing contract.
	Diagnostics []ZoneDiagnostic
}

// Record of how the matcher treated one zone.
type ZoneDiagnostic struct {
	ZoneID    string
	ZoneName  string
	Priority  int
	Contained bool
	Skipped   bool
	Err       error
}
