package api

import (
	"delivery-zone-service/internal/api/handlers"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	validator services.DeliveryValidator,
	collector *metrics.Collector,
	checks map[string]handlers.HealthCheck,
) http.Handler {
	mux := http.NewServeMux()

	validateHandler := &handlers.ValidateHandler{Validator: validator}
	healthHandler := &handlers.HealthHandler{Checks: checks}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/v1/delivery/validate", validateHandler.Validate)
	if collector != nil {
		mux.Handle("/metrics", collector.Handler())
	}

	return requestIDMiddleware(loggingMiddleware(mux, collector))
}
