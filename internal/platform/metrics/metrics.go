package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Validation outcomes used as the "outcome" label.
const (
	OutcomeAccepted           = "accepted"
	OutcomeOutsideArea        = "outside_area"
	OutcomeMinimumOrderNotMet = "minimum_order_not_met"
	OutcomeError              = "error"
)

// Collector owns the service's Prometheus metrics and the registry they live on.
type Collector struct {
	registry *prometheus.Registry

	Validations        *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
	ZonesSkipped       prometheus.Counter
	HTTPRequests       *prometheus.CounterVec
}

// NewCollector registers all metrics on reg. A nil reg gets a fresh registry
// with Go and process collectors attached.
func NewCollector(reg *prometheus.Registry) (*Collector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	c := &Collector{
		registry: reg,
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "delivery_validations_total", Help: "Delivery validations by outcome."},
			[]string{"outcome"},
		),
		ValidationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "delivery_validation_duration_seconds", Help: "Delivery validation duration in seconds.", Buckets: prometheus.DefBuckets},
		),
		ZonesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "delivery_zone_skipped_total", Help: "Zones skipped during matching because of malformed geometry."},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
	}

	for _, col := range []prometheus.Collector{c.Validations, c.ValidationDuration, c.ZonesSkipped, c.HTTPRequests} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
