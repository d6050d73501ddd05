// Package metrics provides Prometheus collection and exposure for the
// provisioning and authentication paths.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is the metrics surface used by the service layer.
type Collector interface {
	RecordProvisioning(path string, outcome string)
	RecordProvisioningDuration(duration time.Duration)
	RecordLogin(outcome string)
}

// Provisioning path labels.
const (
	PathOAuth    = "oauth"
	PathRegister = "register"
)

// Outcome labels.
const (
	OutcomeCreated  = "created"
	OutcomeExisting = "existing"
	OutcomeFailed   = "failed"
)

// PrometheusCollector collects metrics into a Prometheus registry.
type PrometheusCollector struct {
	provisioning         *prometheus.CounterVec
	provisioningDuration prometheus.Histogram
	logins               *prometheus.CounterVec
	registry             *prometheus.Registry
}

// NewPrometheusCollector creates a collector with its own registry.
func NewPrometheusCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	c := &PrometheusCollector{
		provisioning: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamspace_provisioning_total",
			Help: "Account provisioning attempts by path and outcome",
		}, []string{"path", "outcome"}),
		provisioningDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teamspace_provisioning_duration_seconds",
			Help:    "Duration of the transactional provisioning sequence",
			Buckets: prometheus.DefBuckets,
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamspace_logins_total",
			Help: "Local credential verification attempts by outcome",
		}, []string{"outcome"}),
		registry: registry,
	}

	registry.MustRegister(c.provisioning, c.provisioningDuration, c.logins)
	return c
}

func (c *PrometheusCollector) RecordProvisioning(path, outcome string) {
	c.provisioning.WithLabelValues(path, outcome).Inc()
}

func (c *PrometheusCollector) RecordProvisioningDuration(duration time.Duration) {
	c.provisioningDuration.Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry for the /metrics endpoint.
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// NoopCollector discards all metrics. Used in tests.
type NoopCollector struct{}

func (NoopCollector) RecordProvisioning(path, outcome string)          {}
func (NoopCollector) RecordProvisioningDuration(duration time.Duration) {}
func (NoopCollector) RecordLogin(outcome string)                       {}
