// Package metrics exposes Prometheus counters for engine events, imports
// and exports.
package metrics

import (
	"context"
	"net/http"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/errors"
)

const namespace = "gurps"

// Import results
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics owns a private registry so tests and multiple servers in one
// process never collide on registration.
type Metrics struct {
	registry     *prometheus.Registry
	engineEvents *prometheus.CounterVec
	imports      *prometheus.CounterVec
	exports      *prometheus.CounterVec
}

// New builds the collectors and registers them with process and Go
// runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		engineEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_events_total",
			Help:      "Events published by the character engine, by type.",
		}, []string{"type"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Character imports, by file format and result.",
		}, []string{"format", "result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Character exports written to the archive, by file format.",
		}, []string{"format"}),
	}

	m.registry.MustRegister(
		m.engineEvents,
		m.imports,
		m.exports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing Handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Subscribe counts every engine event published on bus
func (m *Metrics) Subscribe(bus events.EventBus) error {
	if bus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	for _, eventType := range engine.EventTypes {
		counter := m.engineEvents.WithLabelValues(eventType)
		bus.SubscribeFunc(eventType, 0, func(_ context.Context, _ events.Event) error {
			counter.Inc()
			return nil
		})
	}
	return nil
}

// ObserveImport records one import attempt
func (m *Metrics) ObserveImport(format string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.imports.WithLabelValues(format, result).Inc()
}

// ObserveExport records one archived export
func (m *Metrics) ObserveExport(format string) {
	m.exports.WithLabelValues(format).Inc()
}
