// Package metrics exposes Prometheus collectors for remote calls and store
// mutations. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple instances never clash
// on the global default registry.
type Metrics struct {
	registry        *prometheus.Registry
	remoteRequests  *prometheus.CounterVec
	remoteDurations *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
}

// New builds and registers the shelf collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		remoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_remote_requests_total",
				Help: "Total number of catalog API requests by operation and status code",
			},
			[]string{"op", "status"},
		),
		remoteDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_remote_request_duration_seconds",
				Help:    "Duration of catalog API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_mutations_total",
				Help: "Store mutations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
	}
	m.registry.MustRegister(m.remoteRequests, m.remoteDurations, m.mutations)
	return m
}

// ObserveRemote records one remote request. status 0 means no response arrived.
func (m *Metrics) ObserveRemote(op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.remoteRequests.WithLabelValues(op, label).Inc()
	m.remoteDurations.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveMutation counts a store mutation outcome.
func (m *Metrics) ObserveMutation(op, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, outcome).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
