package domain

import (
	"errors"
	"fmt"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// ConfigurationError means the restaurant's delivery settings cannot support
// validation at all. It is a system-level failure, not a customer-facing rejection.
type ConfigurationError struct {
	RestaurantID string
	Reason       string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("restaurant %q: %s", e.RestaurantID, e.Reason)
}

// InvalidGeometryError marks a zone shape that cannot be evaluated.
type InvalidGeometryError struct {
	ZoneID string
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	if e.ZoneID == "" {
		return "invalid geometry: " + e.Reason
	}
	return fmt.Sprintf("invalid geometry for zone %q: %s", e.ZoneID, e.Reason)
}

var ErrInvalidRequest = errors.New("invalid validation request")
