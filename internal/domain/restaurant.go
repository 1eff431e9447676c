package domain

// Delivery settings of a restaurant used by zone validation.
// Origin is nil until staff configure the restaurant's location.
type RestaurantDeliveryProfile struct {
	RestaurantID       string
	Origin             *Coordinates
	DefaultDeliveryFee float64
}
