// Package metrics exposes Prometheus counters for order submission.
//
//   - fxtrigger_order_attempts_total{fill_mode,result}: each submission attempt
//   - fxtrigger_executions_total{result}: terminal result per trade
//   - fxtrigger_lot_size: sized lots per trade
//
// Metrics live on their own registry so tests and the CLI never collide
// with the global default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	attempts   *prometheus.CounterVec
	executions *prometheus.CounterVec
	lots       prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtrigger_order_attempts_total",
				Help: "Order submission attempts by fill mode and result (accepted|rejected|error).",
			},
			[]string{"fill_mode", "result"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtrigger_executions_total",
				Help: "Trade executions by terminal result.",
			},
			[]string{"result"},
		),
		lots: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fxtrigger_lot_size",
				Help:    "Lot size computed for each sized trade.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
	}
	m.Registry.MustRegister(m.attempts, m.executions, m.lots)
	return m
}

// Nil-safe so callers can run without metrics.

func (m *Metrics) Attempt(fillMode, result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(fillMode, result).Inc()
}

func (m *Metrics) Execution(result string) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(result).Inc()
}

func (m *Metrics) LotSize(lots float64) {
	if m == nil {
		return
	}
	m.lots.Observe(lots)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
