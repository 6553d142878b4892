// Package metrics records the outcome of a run in Prometheus text format, for the
// node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"ovh-ddns/internal/app"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names use the ovh_ddns_ prefix.
const (
	Namespace = "ovh_ddns"
)

// Recorder holds the metrics of a single run.
type Recorder struct {
	registry *prometheus.Registry

	lastRun     prometheus.Gauge
	success     prometheus.Gauge
	outcome     *prometheus.GaugeVec
	addressInfo *prometheus.GaugeVec
	buildInfo   *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder(version string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last run.",
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run succeeded (updated or skipped), 0 otherwise.",
		}),
		outcome: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_outcome",
			Help:      "Outcome of the last run; the matching label is 1.",
		}, []string{"outcome"}),
		addressInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "address_info",
			Help:      "Address resolved by the last successful run.",
		}, []string{"hostname", "address"}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "build_info",
			Help:      "Build information.",
		}, []string{"version"}),
	}

	r.registry.MustRegister(r.lastRun, r.success, r.outcome, r.addressInfo, r.buildInfo)
	r.buildInfo.WithLabelValues(version).Set(1)
	return r
}

// Observe records a finished run. err is the run's error, if any.
func (r *Recorder) Observe(at time.Time, hostname string, result app.Result, err error) {
	r.lastRun.Set(float64(at.Unix()))

	for _, o := range []string{app.OutcomeUpdated.String(), app.OutcomeSkipped.String(), "failed"} {
		r.outcome.WithLabelValues(o).Set(0)
	}

	if err != nil {
		r.success.Set(0)
		r.outcome.WithLabelValues("failed").Set(1)
		return
	}

	r.success.Set(1)
	r.outcome.WithLabelValues(result.Outcome.String()).Set(1)
	r.addressInfo.Reset()
	r.addressInfo.WithLabelValues(hostname, result.Address).Set(1)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile atomically writes all metrics to path.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}
