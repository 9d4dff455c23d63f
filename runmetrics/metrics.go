/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package runmetrics records Prometheus metrics about report generation runs.
package runmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the metrics of one run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	blocks   *prometheus.CounterVec
	charts   *prometheus.CounterVec
	warnings *prometheus.CounterVec
	duration prometheus.Histogram
	lastRun  prometheus.Gauge
}

// New creates a recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		blocks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robustreport_blocks_total",
				Help: "Total number of experiment blocks processed",
			},
			[]string{"block"},
		),
		charts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robustreport_charts_rendered_total",
				Help: "Total number of chart images rendered",
			},
			[]string{"block"},
		),
		warnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robustreport_baseline_warnings_total",
				Help: "Total number of inconsistent baseline warnings",
			},
			[]string{"block"},
		),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "robustreport_render_duration_seconds",
			Help:    "Time spent rendering the report artifacts",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "robustreport_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		}),
	}
}

// BlockProcessed counts a processed block.
func (r *Recorder) BlockProcessed(block string) {
	r.blocks.WithLabelValues(block).Inc()
}

// ChartsRendered adds n rendered charts for block.
func (r *Recorder) ChartsRendered(block string, n int) {
	r.charts.WithLabelValues(block).Add(float64(n))
}

// BaselineWarning counts an inconsistent baseline in block.
func (r *Recorder) BaselineWarning(block string) {
	r.warnings.WithLabelValues(block).Inc()
}

// ObserveRender records the rendering time and marks the run complete.
func (r *Recorder) ObserveRender(d time.Duration) {
	r.duration.Observe(d.Seconds())
	r.lastRun.SetToCurrentTime()
}

// Gatherer exposes the recorder's registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
