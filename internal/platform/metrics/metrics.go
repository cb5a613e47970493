// Copyright (c) 2026 Residents Book. All rights reserved.

// Package metrics provides Prometheus observability for the web front end.
//
// It tracks upstream Residents API calls (count by outcome, latency), the
// size of the in-memory directory, and successful creations. Every instance
// owns its own registry so tests can build as many as they need.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
)

// Upstream operation labels.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
)

// Metrics holds the registered collectors.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	DirectorySize    prometheus.Gauge
	ResidentsCreated prometheus.Counter
}

// New creates a Metrics instance with all collectors registered on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "residents_upstream_requests_total",
			Help: "Residents API calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "residents_upstream_duration_seconds",
			Help:    "Latency of Residents API calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		DirectorySize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "residents_directory_size",
			Help: "Number of residents held in the in-memory directory",
		}),
		ResidentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "residents_created_total",
			Help: "Total number of residents created through the form",
		}),
	}
}

// ObserveUpstream records one upstream call. Call with time.Now() taken at
// the start of the call and the error it returned.
func (m *Metrics) ObserveUpstream(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.UpstreamRequests.WithLabelValues(operation, outcome(err)).Inc()
}

// SetDirectorySize records the current directory length.
func (m *Metrics) SetDirectorySize(n int) {
	if m == nil {
		return
	}
	m.DirectorySize.Set(float64(n))
}

// IncrementResidentsCreated records a successful creation.
func (m *Metrics) IncrementResidentsCreated() {
	if m == nil {
		return
	}
	m.ResidentsCreated.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if ae := apperr.As(err); ae != nil {
		return strings.ToLower(ae.Code)
	}
	return "error"
}
