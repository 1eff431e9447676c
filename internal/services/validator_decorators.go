package services

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/platform/obs"
	"log"
	"time"
)

// LoggingValidator logs every decision and the per-zone matching trace.
type LoggingValidator struct {
	Next DeliveryValidator
}

func (l *LoggingValidator) Validate(ctx context.Context, req domain.ValidationRequest) (domain.ValidationResult, error) {
	res, err := l.Next.Validate(ctx, req)
	reqID := obs.RequestID(ctx)

	if err != nil {
		kind := "system"
		if IsConfigurationError(err) {
			kind = "config"
		}
		log.Printf("req_id=%s restaurant=%s kind=%s validation failed: %v", reqID, req.RestaurantID, kind, err)
		return res, err
	}

	for _, d := range res.Diagnostics {
		if d.Skipped {
			log.Printf("req_id=%s restaurant=%s zone=%s name=%q priority=%d skipped: %v", reqID, req.RestaurantID, d.ZoneID, d.ZoneName, d.Priority, d.Err)
			continue
		}
		log.Printf("req_id=%s restaurant=%s zone=%s priority=%d contained=%t", reqID, req.RestaurantID, d.ZoneID, d.Priority, d.Contained)
	}

	zoneID := "-"
	if res.MatchedZone != nil {
		zoneID = res.MatchedZone.ID
	}
	log.Printf(
		"req_id=%s restaurant=%s valid=%t reason=%s zone=%s distance_km=%.2f fee=%.2f eta_min=%d",
		reqID, req.RestaurantID, res.Valid, reasonLabel(res.Reason), zoneID, res.DistanceKm, res.DeliveryFee, res.EstimatedTimeMinutes,
	)

	return res, nil
}

// InstrumentedValidator records Prometheus metrics for every decision.
type InstrumentedValidator struct {
	Next    DeliveryValidator
	Metrics *metrics.Collector
}

func (m *InstrumentedValidator) Validate(ctx context.Context, req domain.ValidationRequest) (domain.ValidationResult, error) {
	start := time.Now()
	res, err := m.Next.Validate(ctx, req)
	m.Metrics.ValidationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		m.Metrics.Validations.WithLabelValues(metrics.OutcomeError).Inc()
		return res, err
	}

	for _, d := range res.Diagnostics {
		if d.Skipped {
			m.Metrics.ZonesSkipped.Inc()
		}
	}

	m.Metrics.Validations.WithLabelValues(outcomeLabel(res)).Inc()
	return res, nil
}

func outcomeLabel(res domain.ValidationResult) string {
	switch {
	case res.Valid:
		return metrics.OutcomeAccepted
	case res.Reason == domain.ReasonMinimumOrderNotMet:
		return metrics.OutcomeMinimumOrderNotMet
	default:
		return metrics.OutcomeOutsideArea
	}
}

func reasonLabel(r domain.RejectionReason) string {
	if r == "" {
		return "-"
	}
	return string(r)
}
