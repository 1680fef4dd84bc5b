package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// selfMetrics instruments the collector itself. They are reported with the
// rest of the batch by the collect entrypoint.
type selfMetrics struct {
	runDuration *prometheus.HistogramVec
	runTotal    *prometheus.CounterVec
	records     prometheus.Gauge
}

func newSelfMetrics(reg prometheus.Registerer) *selfMetrics {
	f := promauto.With(reg)
	return &selfMetrics{
		runDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "run_duration_seconds",
				Help:    "Time taken by a collection run",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"run"}, // collect, or the collector name in a carousel
		),
		runTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runs_total",
				Help: "Total number of collection runs",
			},
			[]string{"run", "status"}, // ok or error
		),
		records: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "records",
				Help: "Number of records in the last collected batch",
			},
		),
	}
}

func (m *selfMetrics) observe(run string, err error, d time.Duration, records int) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runDuration.WithLabelValues(run).Observe(d.Seconds())
	m.runTotal.WithLabelValues(run, status).Inc()
	m.records.Set(float64(records))
}
